package loader

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"catalogs/generic.json": &fstest.MapFile{Data: []byte(`[
			{"name": "Red", "hex": "#FF0000"},
			{"name": "Crimson", "hex": "#DC143C"}
		]`)},
		"catalogs/wrapped.json": &fstest.MapFile{Data: []byte(`{
			"colors": [{"name": "Blue", "hex": "#0000FF"}]
		}`)},
		"catalogs/ral.yaml": &fstest.MapFile{Data: []byte(
			"colors:\n" +
				"  - name: Signal red\n" +
				"    hex: \"#A52019\"\n" +
				"    vendor:\n" +
				"      brand: RAL Classic\n" +
				"      code: RAL 3001\n",
		)},
		"catalogs/broken.json": &fstest.MapFile{Data: []byte(`{not json`)},
		"catalogs/binary.json": &fstest.MapFile{Data: []byte{0xff, 0xfe, 0x00, 0x01}},
		"catalogs/notes.txt":   &fstest.MapFile{Data: []byte("not a catalog")},
	}
}

func TestFSLoader_JSONArray(t *testing.T) {
	l := NewFSLoader(testFS())

	entries, err := l.Load(context.Background(), catalog.Source{ID: "generic", Location: "catalogs/generic.json"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Red", entries[0].Name)
	require.Equal(t, "#DC143C", entries[1].Hex)
}

func TestFSLoader_JSONWrappedObject(t *testing.T) {
	l := NewFSLoader(testFS())

	entries, err := l.Load(context.Background(), catalog.Source{ID: "w", Location: "catalogs/wrapped.json"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Blue", entries[0].Name)
}

func TestFSLoader_YAMLWithVendor(t *testing.T) {
	l := NewFSLoader(testFS())

	entries, err := l.Load(context.Background(), catalog.Source{ID: "ral", Location: "catalogs/ral.yaml"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Vendor)
	require.Equal(t, "RAL 3001", entries[0].Vendor.Code)
}

func TestFSLoader_MissingFileIsNotFound(t *testing.T) {
	l := NewFSLoader(testFS())

	_, err := l.Load(context.Background(), catalog.Source{ID: "x", Location: "catalogs/missing.json"})
	require.ErrorIs(t, err, catalog.ErrSourceNotFound)
}

func TestFSLoader_MalformedJSONIsDecodeFailed(t *testing.T) {
	l := NewFSLoader(testFS())

	_, err := l.Load(context.Background(), catalog.Source{ID: "x", Location: "catalogs/broken.json"})
	require.ErrorIs(t, err, catalog.ErrDecodeFailed)
}

func TestFSLoader_InvalidUTF8IsBadEncoding(t *testing.T) {
	l := NewFSLoader(testFS())

	_, err := l.Load(context.Background(), catalog.Source{ID: "x", Location: "catalogs/binary.json"})
	require.ErrorIs(t, err, catalog.ErrBadEncoding)
}

func TestFSLoader_UnknownExtensionIsBadEncoding(t *testing.T) {
	l := NewFSLoader(testFS())

	_, err := l.Load(context.Background(), catalog.Source{ID: "x", Location: "catalogs/notes.txt"})
	require.ErrorIs(t, err, catalog.ErrBadEncoding)
}

func TestFSLoader_CancelledContext(t *testing.T) {
	l := NewFSLoader(testFS())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, catalog.Source{ID: "generic", Location: "catalogs/generic.json"})
	require.ErrorIs(t, err, context.Canceled)
}
