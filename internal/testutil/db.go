// Package testutil provides fixtures for catalog loader tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
)

// Schema is the colors table shape the sqlite loader expects.
const Schema = `
CREATE TABLE colors (
	name TEXT NOT NULL,
	hex TEXT NOT NULL,
	brand TEXT,
	line TEXT,
	code TEXT,
	locator TEXT,
	domain TEXT,
	source TEXT
);
`

// CatalogDB writes a sqlite catalog database containing the given entries,
// in order, into the test's temp dir and returns its path.
func CatalogDB(t *testing.T, entries []catalog.Entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(Schema)
	require.NoError(t, err)

	for _, e := range entries {
		var brand, line, code, locator, domain, source any
		if v := e.Vendor; v != nil {
			brand, line, code = nullable(v.Brand), nullable(v.Line), nullable(v.Code)
			locator, domain, source = nullable(v.Locator), nullable(v.Domain), nullable(v.Source)
		}
		_, err = db.Exec(
			`INSERT INTO colors (name, hex, brand, line, code, locator, domain, source) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Name, e.Hex, brand, line, code, locator, domain, source,
		)
		require.NoError(t, err)
	}

	return path
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
