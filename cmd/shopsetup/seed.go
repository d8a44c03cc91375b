package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/steipete/shopsetup/internal/sampledata"
)

var resetCatalog bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample products",
	Long: `Seed creates the catalog tables in the database named by DATABASE_PATH
and inserts the sample categories and products. Existing rows are kept, so
running it more than once is safe.

With --reset the catalog tables are dropped first, so the database ends up
holding exactly the sample catalog.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func bindSeedFlags() {
	seedCmd.Flags().BoolVar(&resetCatalog, "reset", false, "drop the catalog tables before seeding")
}

func runSeed(cmd *cobra.Command, args []string) error {
	seeder := &sampledata.EnvSeeder{
		EnvFile: cfg.EnvPath(),
		BaseDir: cfg.Dir,
		Logger:  slog.Default(),
	}

	if resetCatalog {
		fmt.Fprintln(cmd.OutOrStdout(), "🧹 Resetting catalog tables...")
		if err := seeder.Reset(); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "📊 Populating database with sample data...")
	if err := seeder.Populate(cmd.Context()); err != nil {
		return fmt.Errorf("populating sample data: %w", err)
	}
	summary, err := seeder.Summary(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", summary)
	return nil
}
