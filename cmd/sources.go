package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
)

var sourcesCheck bool

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured catalog sources",
	Long: `List the configured catalog sources in precedence order. With --check,
each source is loaded and its entry count or failure is reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		srcs := reg.Sources()

		if sourcesCheck {
			ids := make([]catalog.SourceID, 0, len(srcs))
			for _, src := range srcs {
				ids = append(ids, src.ID)
			}
			for _, id := range ids {
				reg.Load(cmd.Context(), id)
			}
			if err := reg.Wait(cmd.Context(), ids...); err != nil {
				return err
			}
		}

		for _, src := range srcs {
			name := src.Name
			if name == "" {
				name = string(src.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s", src.ID, name, src.Location)

			if sourcesCheck {
				switch reg.State(src.ID) {
				case catalog.StateLoaded:
					fmt.Fprintf(cmd.OutOrStdout(), "\t%d entries", len(reg.Entries(src.ID)))
				case catalog.StateFailed:
					fmt.Fprintf(cmd.OutOrStdout(), "\t%s", errStyle.Render(reg.Err(src.ID).Error()))
				}
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesCheck, "check", false,
		"load every source and report entry counts and failures")
	rootCmd.AddCommand(sourcesCmd)
}
