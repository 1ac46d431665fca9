package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/color"
)

var testEntries = []catalog.Entry{
	{Name: "Red", Hex: "#FF0000"},
	{Name: "Crimson", Hex: "#DC143C"},
	{Name: "Blue", Hex: "#0000FF"},
}

// searchSync runs one query and blocks for its result.
func searchSync(t *testing.T, e *Engine, query string, dir Direction) Result {
	t.Helper()

	done := make(chan Result, 1)
	e.Search(query, dir, func(r Result) { done <- r })

	select {
	case r := <-done:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("search %q timed out", query)
		return Result{}
	}
}

func names(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSearch_NameSubstring(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "re", Ascending)
	require.Equal(t, []string{"Red"}, names(r.Entries), "Crimson must not match 're'")
	require.False(t, r.Stale)
}

func TestSearch_PrefixExtensionReusesPreviousResults(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "re", Ascending)
	require.Equal(t, []string{"Red"}, names(r.Entries))

	r = searchSync(t, e, "red", Ascending)
	require.Equal(t, []string{"Red"}, names(r.Entries))
}

func TestSearch_HashOnlyQueryDoesNotEnableReuse(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	// "#" normalizes to text "#" and an empty hex form, matching nothing
	// here. The next query must rescan the backing set, not narrow this
	// empty result set.
	r := searchSync(t, e, "#", Ascending)
	require.Empty(t, names(r.Entries))

	r = searchSync(t, e, "red", Ascending)
	require.Equal(t, []string{"Red"}, names(r.Entries))
}

func TestSearch_HashExtendedByHexDigitsRescans(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "#", Ascending)
	require.Empty(t, names(r.Entries))

	// "#d" extends "#" textually, but its hex form "D" applies a clause
	// the previous scan never did, so the previous results cannot be
	// narrowed.
	r = searchSync(t, e, "#d", Ascending)
	require.Equal(t, []string{"Crimson"}, names(r.Entries))
}

func TestSearch_HexQuery(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "#DC14", Ascending)
	require.Equal(t, []string{"Crimson"}, names(r.Entries))
}

func TestSearch_EmptyQueryReturnsAllSorted(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "", Ascending)
	require.Equal(t, []string{"Blue", "Crimson", "Red"}, names(r.Entries))

	r = searchSync(t, e, "", Descending)
	require.Equal(t, []string{"Red", "Crimson", "Blue"}, names(r.Entries))
}

func TestSearch_VendorFields(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll([]catalog.Entry{
		{Name: "Signal red", Hex: "#A52019", Vendor: &catalog.Vendor{Brand: "RAL Classic", Code: "RAL 3001"}},
		{Name: "Blue", Hex: "#0000FF"},
	})

	r := searchSync(t, e, "ral", Ascending)
	require.Equal(t, []string{"Signal red"}, names(r.Entries))

	r = searchSync(t, e, "3001", Ascending)
	require.Equal(t, []string{"Signal red"}, names(r.Entries))
}

func TestReplaceAll_ClearsReuseCache(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "b", Ascending)
	require.Equal(t, []string{"Blue"}, names(r.Entries))

	// New backing set; "bl" extends "b" but must scan the new snapshot,
	// not the old result set.
	e.ReplaceAll([]catalog.Entry{
		{Name: "Black", Hex: "#000000"},
		{Name: "Blond", Hex: "#FAF0BE"},
	})
	r = searchSync(t, e, "bl", Ascending)
	require.Equal(t, []string{"Black", "Blond"}, names(r.Entries))
}

func TestSearch_NonExtensionRescansFullSet(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	r := searchSync(t, e, "crim", Ascending)
	require.Equal(t, []string{"Crimson"}, names(r.Entries))

	// "blue" does not extend "crim"; results must come from the full set.
	r = searchSync(t, e, "blue", Ascending)
	require.Equal(t, []string{"Blue"}, names(r.Entries))
}

func TestSearch_StaleFlagOnSupersededRequest(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	// Stall the worker so both queries are queued before either runs.
	gate := make(chan struct{})
	e.Search("stall", Ascending, func(Result) { <-gate })

	results := make(chan Result, 2)
	e.Search("re", Ascending, func(r Result) { results <- r })
	e.Search("blue", Ascending, func(r Result) { results <- r })
	close(gate)

	first := <-results
	second := <-results
	require.True(t, first.Stale, "superseded request should be flagged stale")
	require.False(t, second.Stale)
	require.Equal(t, []string{"Blue"}, names(second.Entries))
}

func TestSearch_ResultsDeliveredInSubmissionOrder(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	e.ReplaceAll(testEntries)

	var order []uint64
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		last := i == 4
		e.Search("e", Ascending, func(r Result) {
			order = append(order, r.Seq)
			if last {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, order)
}

// TestProperty_PrefixReuseMatchesFullRescan verifies the central claim: for
// q2 extending q1 by appended characters, searching q1 then q2 (reuse path)
// yields the same result set a fresh engine produces for q2 alone (full
// scan), and that set is a subset of q1's results.
func TestProperty_PrefixReuseMatchesFullRescan(t *testing.T) {
	entryGen := rapid.Custom(func(t *rapid.T) catalog.Entry {
		return catalog.Entry{
			Name: rapid.StringMatching(`[a-f #]{0,8}`).Draw(t, "name"),
			Hex: color.Color{
				R: rapid.Uint8().Draw(t, "r"),
				G: rapid.Uint8().Draw(t, "g"),
				B: rapid.Uint8().Draw(t, "b"),
			}.Hex(),
		}
	})
	rapid.Check(t, func(rt *rapid.T) {
		entries := rapid.SliceOfN(entryGen, 0, 40).Draw(rt, "entries")
		q1 := rapid.StringMatching(`#?[a-f0-9]{0,4}`).Draw(rt, "q1")
		ext := rapid.StringMatching(`[a-f0-9]{0,3}`).Draw(rt, "ext")
		q2 := q1 + ext

		warm := NewEngine()
		defer warm.Close()
		warm.ReplaceAll(entries)

		first := searchSync(t, warm, q1, Ascending)
		reusedRun := searchSync(t, warm, q2, Ascending)

		cold := NewEngine()
		defer cold.Close()
		cold.ReplaceAll(entries)
		fullRun := searchSync(t, cold, q2, Ascending)

		require.Equal(t, names(fullRun.Entries), names(reusedRun.Entries),
			"reuse path and full rescan must agree")

		// Subset of q1's results is only promised when q1 applied every
		// clause q2 does; a bare "#" has an empty hex form, so a hex
		// extension of it can legitimately match entries "#" did not.
		if q1 == "" || strings.TrimPrefix(q1, "#") != "" {
			inFirst := make(map[string]bool, len(first.Entries))
			for _, e := range first.Entries {
				inFirst[e.Key()] = true
			}
			for _, e := range reusedRun.Entries {
				require.True(t, inFirst[e.Key()], "q2 results must be a subset of q1 results")
			}
		}
	})
}

func TestDebouncer_OnlyLastTriggerFires(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	fired := make(chan string, 3)
	d.Trigger(func() { fired <- "first" })
	d.Trigger(func() { fired <- "second" })
	d.Trigger(func() { fired <- "third" })

	select {
	case got := <-fired:
		require.Equal(t, "third", got)
	case <-time.After(time.Second):
		t.Fatal("debounced action never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("unexpected extra fire: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped action should not fire")
	case <-time.After(100 * time.Millisecond):
	}
}
