package registry

import (
	"context"
	"errors"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/pubsub"
)

// Load-state event types published by the registry.
const (
	EventLoading  pubsub.EventType = "source.loading"
	EventLoaded   pubsub.EventType = "source.loaded"
	EventFailed   pubsub.EventType = "source.failed"
	EventUnloaded pubsub.EventType = "source.unloaded"
)

// Event is the payload of a load-state change.
type Event struct {
	ID    catalog.SourceID
	State catalog.State
	Count int   // entry count, loaded events only
	Err   error // failure cause, failed events only
}

// Wait blocks until every given source has settled (loaded or failed), or
// ctx is done. It is a convenience for callers that want synchronous loads;
// the registry itself never blocks.
func (r *Registry) Wait(ctx context.Context, ids ...catalog.SourceID) error {
	// Subscribe before checking state so no settle event is missed.
	events := r.Subscribe(ctx)

	settled := func() bool {
		for _, id := range ids {
			switch r.State(id) {
			case catalog.StateLoaded, catalog.StateFailed:
			default:
				return false
			}
		}
		return true
	}

	if settled() {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				return errors.New("registry closed while waiting for sources")
			}
			if settled() {
				return nil
			}
		}
	}
}
