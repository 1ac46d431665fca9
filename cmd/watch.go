package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog/registry"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload catalog sources as their files change",
	Long: `Watch the catalog directory and reload sources whenever their backing
files change. Load-state transitions are printed as they happen. Runs
until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ids := make([]catalog.SourceID, 0, len(reg.Sources()))
		for _, src := range reg.Sources() {
			ids = append(ids, src.ID)
		}
		loadAndReport(ctx, reg, ids)

		w, err := watcher.New(watcher.Config{
			Dir:         cfg.CatalogDir,
			DebounceDur: cfg.AutoReloadDebounce,
		})
		if err != nil {
			return fmt.Errorf("watching %s: %w", cfg.CatalogDir, err)
		}
		defer w.Stop()

		changes, err := w.Start()
		if err != nil {
			return fmt.Errorf("watching %s: %w", cfg.CatalogDir, err)
		}
		go watcher.Bind(ctx, changes, reg)

		fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", cfg.CatalogDir)

		events := reg.Subscribe(ctx)
		for {
			select {
			case <-ctx.Done():
				return nil
			case evt, ok := <-events:
				if !ok {
					return nil
				}
				printEvent(cmd, evt.Payload)
			}
		}
	},
}

func printEvent(cmd *cobra.Command, e registry.Event) {
	switch e.State {
	case catalog.StateLoaded:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: loaded %d entries\n", e.ID, e.Count)
	case catalog.StateFailed:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.ID, errStyle.Render(e.Err.Error()))
	case catalog.StateLoading:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: loading\n", e.ID)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: unloaded\n", e.ID)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
