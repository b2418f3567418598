package cli

import (
	"os"

	"element-quiz/internal/dataset"
	"element-quiz/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the bundled element dataset into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled element dataset into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfig(*configPath, os.Stderr)
			if err != nil {
				return err
			}
			if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
				return err
			}
			elements, err := dataset.Load()
			if err != nil {
				return err
			}

			db := postgres.Open(cfg.Postgres.URL)
			defer db.Close()
			if err := postgres.SeedElements(ctx, db, elements); err != nil {
				return err
			}
			log.InfoContext(ctx, "elements seeded", "count", len(elements))
			return nil
		},
	}
}
