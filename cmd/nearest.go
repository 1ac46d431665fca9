package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/cache"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/color"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/match"
)

var nearestSources []string

var nearestCmd = &cobra.Command{
	Use:   "nearest <hex>...",
	Short: "Find the closest catalog color to each target value",
	Long: `Find the catalog entry whose color is closest to each target, by
Euclidean distance over RGB. Targets accept 3- or 6-digit hex with an
optional '#'.

Examples:
  colorid nearest "#FE0001"
  colorid nearest F00 00FF00
  colorid nearest "#DC143C" --source pantone`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := make([]color.Color, 0, len(args))
		for _, arg := range args {
			c, err := color.ParseHex(arg)
			if err != nil {
				return err
			}
			targets = append(targets, c)
		}

		reg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ids, err := resolveSources(reg, nearestSources)
		if err != nil {
			return err
		}
		loadAndReport(cmd.Context(), reg, ids)

		pool := reg.Entries(ids...)
		if len(pool) == 0 {
			return errors.New("no catalog entries loaded")
		}

		mgr := cache.NewInMemory[string, match.Match]("nearest",
			cache.DefaultExpiration, cache.DefaultCleanupInterval)
		memo := match.NewMemo(pool, mgr, cfg.Match.MemoTTL)

		for _, target := range targets {
			m, ok := memo.Nearest(cmd.Context(), target)
			if !ok {
				return errors.New("no catalog entries loaded")
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMatch(target, m))
		}
		return nil
	},
}

func init() {
	nearestCmd.Flags().StringArrayVarP(&nearestSources, "source", "s", nil,
		"restrict to a source id (can be repeated; default: all configured)")
	rootCmd.AddCommand(nearestCmd)
}
