// Package registry owns the set of catalog sources, loads them on demand in
// the background, and exposes deduplicated merged views over any subset of
// loaded sources.
package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog/loader"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/pubsub"
)

// sourceState tracks one source's load lifecycle. generation changes on
// every unload/reload so that a completion from a superseded load can be
// recognized and discarded.
type sourceState struct {
	src        catalog.Source
	state      catalog.State
	entries    []catalog.Entry
	err        error
	generation string
}

// Registry is safe for concurrent use. Loads for distinct sources run
// concurrently; state transitions for a single source are serialized by the
// in-flight state check in Load.
type Registry struct {
	mu      sync.Mutex
	sources map[catalog.SourceID]*sourceState
	order   []catalog.SourceID

	loader loader.Loader
	broker *pubsub.Broker[Event]
	tracer trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracer attaches an OpenTelemetry tracer; load operations get a span.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Registry) { r.tracer = tracer }
}

// New creates a registry over the given loader and sources. No source is
// loaded until Load is called for it.
func New(l loader.Loader, sources []catalog.Source, opts ...Option) *Registry {
	r := &Registry{
		sources: make(map[catalog.SourceID]*sourceState, len(sources)),
		loader:  l,
		broker:  pubsub.NewBroker[Event](),
		tracer:  noop.NewTracerProvider().Tracer("registry"),
	}
	for _, src := range sources {
		r.sources[src.ID] = &sourceState{src: src}
		r.order = append(r.order, src.ID)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sources returns the registered source descriptors in registration order.
func (r *Registry) Sources() []catalog.Source {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]catalog.Source, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sources[id].src)
	}
	return out
}

// Load requests a background load of the source. Requesting a source that is
// already loading or loaded is a no-op, so concurrent calls never trigger
// duplicate loads. Requesting an unknown id is a logged no-op; Err reports
// ErrUnknownSource for unregistered ids.
func (r *Registry) Load(ctx context.Context, id catalog.SourceID) {
	r.mu.Lock()

	st, ok := r.sources[id]
	if !ok {
		r.mu.Unlock()
		log.Warn(log.CatCatalog, "load requested for unregistered source", "source", id)
		return
	}
	if st.state == catalog.StateLoading || st.state == catalog.StateLoaded {
		r.mu.Unlock()
		return
	}

	st.state = catalog.StateLoading
	st.err = nil
	st.generation = uuid.NewString()

	src := st.src
	generation := st.generation
	r.mu.Unlock()

	r.broker.Publish(EventLoading, Event{ID: id, State: catalog.StateLoading})
	log.Info(log.CatCatalog, "loading catalog source", "source", id, "location", src.Location)

	go r.runLoad(ctx, src, generation)
}

// Reload clears any loaded or failed state for the source, then loads it
// again. An in-flight load for the previous generation is discarded when it
// completes.
func (r *Registry) Reload(ctx context.Context, id catalog.SourceID) {
	r.mu.Lock()
	if st, ok := r.sources[id]; ok {
		st.state = catalog.StateNotRequested
		st.entries = nil
		st.err = nil
		st.generation = ""
	}
	r.mu.Unlock()

	r.Load(ctx, id)
}

// Unload drops the source's entries and error state immediately. Safe
// mid-load: the eventual completion carries a stale generation tag and is
// discarded.
func (r *Registry) Unload(id catalog.SourceID) {
	r.mu.Lock()
	st, ok := r.sources[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	st.state = catalog.StateNotRequested
	st.entries = nil
	st.err = nil
	st.generation = ""
	r.mu.Unlock()

	r.broker.Publish(EventUnloaded, Event{ID: id, State: catalog.StateNotRequested})
	log.Info(log.CatCatalog, "unloaded catalog source", "source", id)
}

// runLoad performs one background load and publishes its outcome, unless the
// source was unloaded or reloaded while the load was in flight.
func (r *Registry) runLoad(ctx context.Context, src catalog.Source, generation string) {
	ctx, span := r.tracer.Start(ctx, "catalog.load",
		trace.WithAttributes(attribute.String("catalog.source", string(src.ID))))
	defer span.End()

	entries, err := r.loader.Load(ctx, src)

	r.mu.Lock()
	st, ok := r.sources[src.ID]
	if !ok || st.generation != generation {
		r.mu.Unlock()
		span.AddEvent("completion discarded, load superseded")
		log.Debug(log.CatCatalog, "discarding stale load completion", "source", src.ID)
		return
	}

	if err != nil {
		st.state = catalog.StateFailed
		st.entries = nil
		st.err = err
		r.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.broker.Publish(EventFailed, Event{ID: src.ID, State: catalog.StateFailed, Err: err})
		log.ErrorErr(log.CatCatalog, "catalog load failed", err, "source", src.ID)
		return
	}

	st.state = catalog.StateLoaded
	st.entries = entries
	st.err = nil
	r.mu.Unlock()

	span.SetAttributes(attribute.Int("catalog.entries", len(entries)))
	span.SetStatus(codes.Ok, "")
	r.broker.Publish(EventLoaded, Event{ID: src.ID, State: catalog.StateLoaded, Count: len(entries)})
	log.Info(log.CatCatalog, "catalog source loaded", "source", src.ID, "entries", len(entries))
}

// State reports the source's current load state.
func (r *Registry) State(id catalog.SourceID) catalog.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.sources[id]; ok {
		return st.state
	}
	return catalog.StateNotRequested
}

// Err returns the recorded load error for the source, nil unless the source
// is in the failed state.
func (r *Registry) Err(id catalog.SourceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.sources[id]; ok {
		return st.err
	}
	return catalog.ErrUnknownSource
}

// Entries returns the deduplicated union of the currently loaded sources
// among ids, in the given order. Sources that are not loaded contribute
// nothing; there is no implicit blocking. On key collisions the first
// occurrence wins, so the caller's ordering determines precedence.
func (r *Registry) Entries(ids ...catalog.SourceID) []catalog.Entry {
	r.mu.Lock()
	var merged []catalog.Entry
	for _, id := range ids {
		if st, ok := r.sources[id]; ok && st.state == catalog.StateLoaded {
			merged = append(merged, st.entries...)
		}
	}
	r.mu.Unlock()

	return catalog.Dedupe(merged)
}

// Search is the uncached full-scan filter over Entries, for one-off queries.
// Interactive typing goes through the incremental search engine instead.
func (r *Registry) Search(query string, ids ...catalog.SourceID) []catalog.Entry {
	qt, qh := catalog.NormalizeQuery(query)

	var out []catalog.Entry
	for _, e := range r.Entries(ids...) {
		if e.Matches(qt, qh) {
			out = append(out, e)
		}
	}
	return out
}

// Subscribe returns a channel of load-state events. The subscription ends
// when ctx is cancelled.
func (r *Registry) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return r.broker.Subscribe(ctx)
}

// Close shuts down the event broker.
func (r *Registry) Close() {
	r.broker.Close()
}
