package main

import (
	"fmt"
	"text/tabwriter"

	"clutchdemo/pkg/utils"

	"github.com/spf13/cobra"
)

var listLimit int

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clutches, newest upload first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clutches, err := container.QueryService.ListClutches(cmd.Context(), listLimit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUPLOADED\tSTATUS\tEGGS\tVIABLE")
		for _, c := range clutches {
			total, viable := "-", "-"
			if c.TotalEggCount != nil {
				total = fmt.Sprint(*c.TotalEggCount)
			}
			if c.ViableEggCount != nil {
				viable = fmt.Sprint(*c.ViableEggCount)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				c.ID, utils.FormatTimestamp(c.UploadTimestamp), c.Status, total, viable)
		}
		return tw.Flush()
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum clutches to show (default 50, max 100)")
}
