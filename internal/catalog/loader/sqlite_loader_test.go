package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/testutil"
)

func TestSQLiteLoader_ReadsRowsInOrder(t *testing.T) {
	path := testutil.CatalogDB(t, []catalog.Entry{
		{Name: "Red", Hex: "#FF0000"},
		{Name: "Signal red", Hex: "#A52019", Vendor: &catalog.Vendor{
			Brand: "RAL Classic", Code: "RAL 3001", Domain: "paint",
		}},
	})

	l := NewSQLiteLoader()
	entries, err := l.Load(context.Background(), catalog.Source{ID: "ral", Location: path})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "Red", entries[0].Name)
	require.Nil(t, entries[0].Vendor)

	require.Equal(t, "Signal red", entries[1].Name)
	require.NotNil(t, entries[1].Vendor)
	require.Equal(t, "RAL 3001", entries[1].Vendor.Code)
	require.Equal(t, "paint", entries[1].Vendor.Domain)
}

func TestSQLiteLoader_MissingFileIsNotFound(t *testing.T) {
	l := NewSQLiteLoader()

	_, err := l.Load(context.Background(), catalog.Source{
		ID:       "nope",
		Location: filepath.Join(t.TempDir(), "missing.db"),
	})
	require.ErrorIs(t, err, catalog.ErrSourceNotFound)
}

func TestSQLiteLoader_EmptyTable(t *testing.T) {
	path := testutil.CatalogDB(t, nil)

	l := NewSQLiteLoader()
	entries, err := l.Load(context.Background(), catalog.Source{ID: "empty", Location: path})
	require.NoError(t, err)
	require.Empty(t, entries)
}
