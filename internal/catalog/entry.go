// Package catalog defines the domain types for named-color catalogs: entries
// merged from one or more vendor sources, the source descriptors themselves,
// and their load state.
package catalog

import (
	"strings"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/color"
)

// Vendor holds the optional vendor record attached to an entry.
type Vendor struct {
	Brand   string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Line    string `json:"line,omitempty" yaml:"line,omitempty"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Locator string `json:"locator,omitempty" yaml:"locator,omitempty"`
	Domain  string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Entry is one named color plus optional vendor metadata.
// Entries are created at load time and treated as immutable afterwards.
type Entry struct {
	Name   string       `json:"name" yaml:"name"`
	Hex    string       `json:"hex" yaml:"hex"`
	Vendor *Vendor      `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	RGB    *color.Color `json:"rgb,omitempty" yaml:"rgb,omitempty"`
}

// Key returns the identity used for deduplication and map lookups:
// the vendor code when present, otherwise "name|hex" lowercased.
// Stable for the lifetime of the entry.
func (e Entry) Key() string {
	if e.Vendor != nil && e.Vendor.Code != "" {
		return e.Vendor.Code
	}
	return strings.ToLower(e.Name + "|" + e.Hex)
}

// Color resolves the entry's RGB value, preferring the raw triple when the
// source supplied one and falling back to parsing the hex string.
func (e Entry) Color() (color.Color, error) {
	if e.RGB != nil {
		return *e.RGB, nil
	}
	return color.ParseHex(e.Hex)
}

// Matches reports whether the entry matches a normalized query: qt is the
// trimmed lowercase text form, qh the normalized hex form. An entry matches
// when its lowercased name contains qt, its normalized hex contains qh, or
// its vendor brand or code contains qt. Both forms empty matches everything.
func (e Entry) Matches(qt, qh string) bool {
	if qt == "" && qh == "" {
		return true
	}
	if qt != "" {
		if strings.Contains(strings.ToLower(e.Name), qt) {
			return true
		}
		if e.Vendor != nil {
			if strings.Contains(strings.ToLower(e.Vendor.Brand), qt) {
				return true
			}
			if e.Vendor.Code != "" && strings.Contains(strings.ToLower(e.Vendor.Code), qt) {
				return true
			}
		}
	}
	if qh != "" && strings.Contains(color.NormalizeHex(e.Hex), qh) {
		return true
	}
	return false
}

// NormalizeQuery reduces a raw query string to both comparable forms.
// Matching tries both regardless of which the user intended.
func NormalizeQuery(raw string) (text, hex string) {
	return strings.ToLower(strings.TrimSpace(raw)), color.NormalizeHex(raw)
}

// Dedupe returns entries with duplicate keys removed, first occurrence wins.
// Input order is preserved.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		key := e.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
