package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	stdpath "path"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
)

// FSLoader reads catalog files from an fs.FS. The source Location is a
// slash-separated path within the filesystem; the extension selects the
// decoder (.json, .yaml, .yml).
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader over the given filesystem.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

var _ Loader = (*FSLoader)(nil)

// catalogFile is the root structure of a catalog resource. A bare entry
// array is accepted too.
type catalogFile struct {
	Colors []catalog.Entry `json:"colors" yaml:"colors"`
}

// Load reads and decodes the source's backing file.
func (l *FSLoader) Load(ctx context.Context, src catalog.Source) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, src.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrSourceNotFound, src.Location)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrBadEncoding, src.Location)
	}

	var entries []catalog.Entry
	switch stdpath.Ext(src.Location) {
	case ".json":
		entries, err = decodeJSON(data)
	case ".yaml", ".yml":
		entries, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", catalog.ErrBadEncoding, src.Location)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", catalog.ErrDecodeFailed, src.Location, err)
	}

	log.Debug(log.CatCatalog, "decoded catalog file", "source", src.ID, "entries", len(entries))

	return entries, nil
}

func decodeJSON(data []byte) ([]catalog.Entry, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err == nil && file.Colors != nil {
		return file.Colors, nil
	}

	var entries []catalog.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeYAML(data []byte) ([]catalog.Entry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err == nil && file.Colors != nil {
		return file.Colors, nil
	}

	var entries []catalog.Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
