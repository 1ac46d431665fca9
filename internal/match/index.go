// Package match finds the catalog entry closest to a target color. It backs
// both single lookups (favorite display) and the high-frequency live
// sampling path, so an index parses each entry's color exactly once.
package match

import (
	"errors"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/color"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
)

// ErrEmptyPool reports a nearest lookup against a pool with no matchable
// entries.
var ErrEmptyPool = errors.New("nearest lookup on empty pool")

// Match pairs an entry with its distance to the requested target.
type Match struct {
	Entry    catalog.Entry
	Distance float64
}

// Index is an immutable candidate pool with pre-resolved colors. When the
// backing catalog view changes, build a new Index rather than mutating one
// mid-scan.
type Index struct {
	entries []catalog.Entry
	colors  []color.Color
}

// NewIndex builds an index over the pool, preserving pool order. Entries
// whose hex cannot be parsed and that carry no raw RGB are skipped; they can
// never be a nearest match.
func NewIndex(pool []catalog.Entry) *Index {
	idx := &Index{
		entries: make([]catalog.Entry, 0, len(pool)),
		colors:  make([]color.Color, 0, len(pool)),
	}
	for _, e := range pool {
		c, err := e.Color()
		if err != nil {
			log.Warn(log.CatMatch, "skipping entry with unparseable color", "name", e.Name, "hex", e.Hex)
			continue
		}
		idx.entries = append(idx.entries, e)
		idx.colors = append(idx.colors, c)
	}
	return idx
}

// Len reports the number of matchable entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Nearest returns the pool entry with minimum Euclidean distance to target.
// Ties resolve to the first entry encountered, so pool order matters. The
// second return is false only for an empty pool. Linear scan; no allocation.
func (idx *Index) Nearest(target color.Color) (Match, bool) {
	if len(idx.entries) == 0 {
		return Match{}, false
	}

	best := 0
	bestDist := target.Distance(idx.colors[0])
	for i := 1; i < len(idx.colors); i++ {
		if d := target.Distance(idx.colors[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}

	return Match{Entry: idx.entries[best], Distance: bestDist}, true
}

// NearestBatch resolves one nearest match per target, preserving target
// order. Used for photo palettes, where the extractor hands over a batch of
// RGB triples. Targets against an empty pool yield no matches.
func (idx *Index) NearestBatch(targets []color.Color) []Match {
	if len(idx.entries) == 0 {
		return nil
	}

	out := make([]Match, 0, len(targets))
	for _, target := range targets {
		if m, ok := idx.Nearest(target); ok {
			out = append(out, m)
		}
	}
	return out
}
