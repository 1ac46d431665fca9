// Package search serves interactive, incremental text and hex queries over a
// mutable backing entry set. Each engine owns a single background worker, so
// filtering and sorting for one engine never run concurrently with each
// other; that is what makes the prefix-reuse cache safe without locking.
package search

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
)

// Direction selects the result sort order; results are always sorted by
// entry name.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Result is delivered to the search callback on the engine's worker
// goroutine.
type Result struct {
	Query   string
	Entries []catalog.Entry
	Seq     uint64
	// Stale is true when a later Search was issued before this one
	// completed. Stale results did not update the engine's reuse cache;
	// callers typically drop them.
	Stale bool
}

// Callback receives one Result per Search call.
type Callback func(Result)

type searchReq struct {
	query string
	dir   Direction
	seq   uint64
	fn    Callback
}

type replaceReq struct {
	entries []catalog.Entry
}

// Engine holds the backing set, the last query in both normalized forms, and
// the results produced for it. All of that state is owned by the worker
// goroutine; the public methods only enqueue work.
type Engine struct {
	reqs chan any
	quit chan struct{}
	done chan struct{}

	// latest sequence number issued; completions compare against it.
	seq atomic.Uint64

	// worker-owned, never touched outside run().
	backing     []catalog.Entry
	lastText    string
	lastHex     string
	lastResults []catalog.Entry
	hasLast     bool
}

const queueDepth = 64

// NewEngine starts an engine with an empty backing set.
func NewEngine() *Engine {
	e := &Engine{
		reqs: make(chan any, queueDepth),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go e.run()
	return e
}

// ReplaceAll swaps in a new backing snapshot and clears the cached
// last-query state, forcing the next search to do a full scan. Valid in any
// state. The slice is treated as immutable from here on.
func (e *Engine) ReplaceAll(entries []catalog.Entry) {
	e.submit(replaceReq{entries: entries})
}

// Search enqueues one query. The callback runs on the engine's worker
// goroutine, in submission order. Overlapping calls are safe: every request
// gets a sequence number and only the latest one updates the prefix-reuse
// cache, so an out-of-order completion can be recognized by Result.Stale.
func (e *Engine) Search(query string, dir Direction, fn Callback) {
	seq := e.seq.Add(1)
	e.submit(searchReq{query: query, dir: dir, seq: seq, fn: fn})
}

// Close stops the worker. Pending requests are dropped.
func (e *Engine) Close() {
	select {
	case <-e.quit:
	default:
		close(e.quit)
	}
	<-e.done
}

func (e *Engine) submit(msg any) {
	select {
	case e.reqs <- msg:
	case <-e.quit:
	}
}

func (e *Engine) run() {
	defer close(e.done)
	for {
		select {
		case <-e.quit:
			return
		case msg := <-e.reqs:
			switch m := msg.(type) {
			case replaceReq:
				e.backing = m.entries
				e.lastText, e.lastHex = "", ""
				e.lastResults = nil
				e.hasLast = false
			case searchReq:
				e.handleSearch(m)
			}
		}
	}
}

func (e *Engine) handleSearch(req searchReq) {
	qt, qh := catalog.NormalizeQuery(req.query)

	// Prefix extension means the new result set is necessarily a subset of
	// the previous one, so filtering the previous results is enough.
	pool := e.backing
	reused := false
	if e.canReuse(qt, qh) {
		pool = e.lastResults
		reused = true
	}

	matched := make([]catalog.Entry, 0, len(pool))
	for _, entry := range pool {
		if entry.Matches(qt, qh) {
			matched = append(matched, entry)
		}
	}

	latest := req.seq == e.seq.Load()
	if latest {
		e.lastText, e.lastHex = qt, qh
		e.lastResults = matched
		e.hasLast = true
	}

	log.Debug(log.CatSearch, "search complete",
		"query", req.query, "results", len(matched), "reused", reused, "stale", !latest)

	req.fn(Result{
		Query:   req.query,
		Entries: sortByName(matched, req.dir),
		Seq:     req.seq,
		Stale:   !latest,
	})
}

// canReuse reports whether the previous result set is guaranteed to be a
// superset of the new query's matches. An empty previous query matched
// everything, so anything can narrow it. Otherwise both normalized forms
// must extend the previous ones: a clause the previous scan never applied
// (an empty lastHex against a non-empty qh, which a bare "#" query
// produces) can admit entries the previous scan filtered out.
func (e *Engine) canReuse(qt, qh string) bool {
	if !e.hasLast {
		return false
	}
	if e.lastText == "" && e.lastHex == "" {
		return true
	}
	if !strings.HasPrefix(qt, e.lastText) {
		return false
	}
	return qh == "" || (e.lastHex != "" && strings.HasPrefix(qh, e.lastHex))
}

// sortByName returns a freshly sorted copy; sorting always happens after
// filtering, it is not an optimization target.
func sortByName(entries []catalog.Entry, dir Direction) []catalog.Entry {
	out := make([]catalog.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Name)
		b := strings.ToLower(out[j].Name)
		if dir == Descending {
			return a > b
		}
		return a < b
	})
	return out
}
