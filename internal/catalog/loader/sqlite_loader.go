package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
)

// colorColumns is the column list selected for catalog queries, in the order
// scanRow expects.
const colorColumns = `name, hex, brand, line, code, locator, domain, source`

// SQLiteLoader reads catalog entries from a bundled sqlite database. Large
// vendor catalogs ship as a single .db file with a `colors` table; Location
// is the database path. The database is opened read-only and row order
// (rowid) is the catalog's entry order.
type SQLiteLoader struct{}

// NewSQLiteLoader creates a sqlite-backed loader.
func NewSQLiteLoader() *SQLiteLoader {
	return &SQLiteLoader{}
}

var _ Loader = (*SQLiteLoader)(nil)

// Load opens the source's database and reads every row of the colors table.
func (l *SQLiteLoader) Load(ctx context.Context, src catalog.Source) ([]catalog.Entry, error) {
	if _, err := os.Stat(src.Location); err != nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrSourceNotFound, src.Location)
	}

	db, err := sql.Open("sqlite3", "file:"+src.Location+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open catalog db %s: %w", src.Location, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT `+colorColumns+` FROM colors ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", catalog.ErrDecodeFailed, src.Location, err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		entry, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", catalog.ErrDecodeFailed, src.Location, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", catalog.ErrDecodeFailed, src.Location, err)
	}

	log.Debug(log.CatCatalog, "decoded catalog db", "source", src.ID, "entries", len(entries))

	return entries, nil
}

func scanRow(rows *sql.Rows) (catalog.Entry, error) {
	var (
		name, hex                                     string
		brand, line, code, locator, domain, sourceTag sql.NullString
	)
	if err := rows.Scan(&name, &hex, &brand, &line, &code, &locator, &domain, &sourceTag); err != nil {
		return catalog.Entry{}, err
	}

	entry := catalog.Entry{Name: name, Hex: hex}
	if brand.Valid || line.Valid || code.Valid || locator.Valid || domain.Valid || sourceTag.Valid {
		entry.Vendor = &catalog.Vendor{
			Brand:   brand.String,
			Line:    line.String,
			Code:    code.String,
			Locator: locator.String,
			Domain:  domain.String,
			Source:  sourceTag.String,
		}
	}
	return entry, nil
}
