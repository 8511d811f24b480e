package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createTableCmd represents the create-table command
var createTableCmd = &cobra.Command{
	Use:   "create-table",
	Short: "Create the data table if it does not exist",
	Long: `create-table provisions the single-table layout (pk/sk plus GSI1) so the
populator can run against DynamoDB Local. Point DYNAMODB_ENDPOINT at the local
instance first; the deployed stack owns its own table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := container.Config
		created, err := container.Provisioner.EnsureTable(cmd.Context(), cfg.DynamoDBTable, cfg.GSI1IndexName)
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Created table %s\n", cfg.DynamoDBTable)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Table %s already exists\n", cfg.DynamoDBTable)
		}
		return nil
	},
}
