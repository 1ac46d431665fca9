package loader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
)

// OSLoader reads catalog files from the host filesystem, routing sqlite
// databases to the sqlite loader and json/yaml files to an fs-based
// loader rooted at the file's directory. Source locations are OS paths,
// absolute or relative to the working directory.
type OSLoader struct {
	db *SQLiteLoader
}

// NewOSLoader creates a loader for OS path locations.
func NewOSLoader() *OSLoader {
	return &OSLoader{db: NewSQLiteLoader()}
}

var _ Loader = (*OSLoader)(nil)

// Load dispatches on the location's extension.
func (l *OSLoader) Load(ctx context.Context, src catalog.Source) ([]catalog.Entry, error) {
	switch filepath.Ext(src.Location) {
	case ".db", ".sqlite", ".sqlite3":
		return l.db.Load(ctx, src)
	default:
		dir, file := filepath.Split(src.Location)
		if dir == "" {
			dir = "."
		}
		sub := src
		sub.Location = file
		return NewFSLoader(os.DirFS(dir)).Load(ctx, sub)
	}
}
