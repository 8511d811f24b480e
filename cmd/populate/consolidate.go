package main

import (
	"errors"
	"fmt"

	"clutchdemo/domain/clutch"

	"github.com/spf13/cobra"
)

var consolidateAll bool

// consolidateCmd represents the consolidate command
var consolidateCmd = &cobra.Command{
	Use:   "consolidate [clutch-id...]",
	Short: "Count total and viable eggs and store them on the clutch",
	Long: `consolidate rolls the egg analyses of each named clutch up into
totalEggCount and viableEggCount on its metadata record. An egg is viable when
its hatch likelihood is at least 50. Use --all to consolidate every clutch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if consolidateAll == (len(args) > 0) {
			return errors.New("name one or more clutch ids, or pass --all")
		}

		var results []clutch.Findings
		var err error
		if consolidateAll {
			results, err = container.ConsolidationService.ConsolidateAll(cmd.Context())
		} else {
			for _, id := range args {
				var f *clutch.Findings
				f, err = container.ConsolidationService.Consolidate(cmd.Context(), id)
				if err != nil {
					break
				}
				results = append(results, *f)
			}
		}

		for _, f := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d eggs, %d viable\n", f.ClutchID, f.TotalEggCount, f.ViableEggCount)
		}
		return err
	},
}

func init() {
	consolidateCmd.Flags().BoolVar(&consolidateAll, "all", false, "consolidate every clutch")
}
