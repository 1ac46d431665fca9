// Package loader resolves catalog source descriptors into entry lists.
// The registry never loads data itself; it delegates to a Loader.
package loader

import (
	"context"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
)

// Loader decodes the backing resource of a single catalog source into its
// ordered entry list. Failures are per-source; a Loader never affects
// sibling sources.
type Loader interface {
	Load(ctx context.Context, src catalog.Source) ([]catalog.Entry, error)
}

// Func adapts a plain function to the Loader interface.
type Func func(ctx context.Context, src catalog.Source) ([]catalog.Entry, error)

func (f Func) Load(ctx context.Context, src catalog.Source) ([]catalog.Entry, error) {
	return f(ctx, src)
}
