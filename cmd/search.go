package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog/registry"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/search"
)

var (
	searchSources []string
	searchSort    string
	searchLimit   int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search catalog entries by name, vendor field, or hex fragment",
	Long: `Search loaded catalogs for entries matching the query. Text queries match
against name, vendor brand, and vendor code; hex-looking queries also match
against the entry's color value.

Examples:
  # All entries, sorted by name
  colorid search

  # Substring of a name
  colorid search crimson

  # Hex fragment, with or without '#'
  colorid search "#DC14"

  # Restrict to specific sources
  colorid search blue --source ral --source pantone`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ids, err := resolveSources(reg, searchSources)
		if err != nil {
			return err
		}
		loadAndReport(cmd.Context(), reg, ids)

		sort := searchSort
		if sort == "" {
			sort = cfg.Search.Sort
		}
		dir := search.Ascending
		if strings.EqualFold(sort, "desc") {
			dir = search.Descending
		}

		engine := search.NewEngine()
		defer engine.Close()
		engine.ReplaceAll(reg.Entries(ids...))

		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		done := make(chan search.Result, 1)
		engine.Search(query, dir, func(res search.Result) {
			done <- res
		})
		res := <-done

		entries := res.Entries
		if searchLimit > 0 && len(entries) > searchLimit {
			entries = entries[:searchLimit]
		}

		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), renderEntry(e))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d entries\n", len(entries), len(res.Entries))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringArrayVarP(&searchSources, "source", "s", nil,
		"restrict to a source id (can be repeated; default: all configured)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "",
		`result order by name: "asc" or "desc" (default from config)`)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0,
		"show at most this many entries (0 = all)")
	rootCmd.AddCommand(searchCmd)
}

// resolveSources maps --source flags to registered ids, defaulting to every
// configured source.
func resolveSources(reg *registry.Registry, flags []string) ([]catalog.SourceID, error) {
	all := reg.Sources()

	if len(flags) == 0 {
		ids := make([]catalog.SourceID, 0, len(all))
		for _, src := range all {
			ids = append(ids, src.ID)
		}
		return ids, nil
	}

	known := make(map[catalog.SourceID]bool, len(all))
	for _, src := range all {
		known[src.ID] = true
	}

	ids := make([]catalog.SourceID, 0, len(flags))
	for _, f := range flags {
		id := catalog.SourceID(f)
		if !known[id] {
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownSource, f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadAndReport loads the given sources, waits for them to settle, and
// prints a warning for each one that failed.
func loadAndReport(ctx context.Context, reg *registry.Registry, ids []catalog.SourceID) {
	for _, id := range ids {
		reg.Load(ctx, id)
	}
	if err := reg.Wait(ctx, ids...); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	for _, id := range ids {
		if err := reg.Err(id); err != nil {
			fmt.Fprintf(os.Stderr, "warning: source %s failed: %v\n", id, err)
		}
	}
}
