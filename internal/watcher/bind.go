package watcher

import (
	"context"
	"path/filepath"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog/registry"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
)

// Bind consumes change notifications and reloads the matching source.
// Paths are matched against source locations by base name, since the
// watcher reports absolute paths while locations may be relative to the
// catalog dir. Runs until ctx is done or the channel closes.
func Bind(ctx context.Context, changes <-chan string, reg *registry.Registry) {
	byBase := make(map[string]catalog.SourceID)
	for _, src := range reg.Sources() {
		byBase[filepath.Base(src.Location)] = src.ID
	}

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-changes:
			if !ok {
				return
			}
			id, known := byBase[filepath.Base(path)]
			if !known {
				log.Debug(log.CatWatcher, "change for unregistered file", "path", path)
				continue
			}
			log.Info(log.CatWatcher, "reloading changed source", "source", id, "path", path)
			reg.Reload(ctx, id)
		}
	}
}
