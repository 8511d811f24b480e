package main

import (
	"fmt"

	"clutchdemo/application/generator"
	"clutchdemo/infrastructure/config"
	"clutchdemo/infrastructure/di"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Used for flags.
	tableName string
	clutches  int
	minEggs   int
	maxEggs   int
	seed      uint64

	container *di.Container

	// newContainer wires dependencies; replaced in tests
	newContainer = di.InitializeContainer

	rootCmd = &cobra.Command{
		Use:   "populate",
		Short: "Seed the clutch table with demo data",
		Long: `populate writes a fresh set of demo clutches, each with a handful of
analyzed eggs, into the DynamoDB data table and prints where to look at them.

Running it without a subcommand seeds the table. Every run adds new clutches;
existing data is left alone.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runSeed,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&tableName, "table", "", "DynamoDB table name (overrides TABLE_NAME)")

	seedFlags := rootCmd.Flags()
	seedFlags.IntVar(&clutches, "clutches", 0, "number of clutches to create (overrides CLUTCH_COUNT)")
	seedFlags.IntVar(&minEggs, "min-eggs", 0, "fewest eggs per clutch (overrides MIN_EGGS_PER_CLUTCH)")
	seedFlags.IntVar(&maxEggs, "max-eggs", 0, "most eggs per clutch (overrides MAX_EGGS_PER_CLUTCH)")
	seedFlags.Uint64Var(&seed, "seed", 0, "seed for reproducible output (overrides SEED)")

	rootCmd.AddCommand(listCmd, getCmd, consolidateCmd, createTableCmd)
}

// Execute executes the root command.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	defer func() {
		if container != nil {
			container.Close()
		}
	}()
	return rootCmd.Execute()
}

// setup loads configuration, applies flag overrides and wires dependencies
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if tableName != "" {
		cfg.DynamoDBTable = tableName
	}
	if clutches > 0 {
		cfg.ClutchCount = clutches
	}
	if minEggs > 0 {
		cfg.MinEggsPerClutch = minEggs
	}
	if maxEggs > 0 {
		cfg.MaxEggsPerClutch = maxEggs
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	container, err = newContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	container.Logger.Debug("Seeding clutch table",
		zap.String("table", container.Config.DynamoDBTable),
		zap.Int("clutches", container.Config.ClutchCount),
	)

	gen := generator.New(di.GeneratorOptions(container.Config))
	_, err := container.PopulateService(gen, cmd.OutOrStdout()).Populate(ctx)
	return err
}
