package main

import (
	"fmt"
	"io"

	"github.com/osr-alliance/backend-service-leads/config"
	"github.com/osr-alliance/backend-service-leads/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate [up|down|version]",
		Short: "Apply or revert the database schema",
		Long: `Runs the embedded schema migrations against database.url.

  up       apply every pending migration (default)
  down     revert every migration, dropping all service tables
  version  print the applied schema version`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runMigrate(cmd.OutOrStdout(), cfg.Database.URL, direction)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	return cmd
}

func runMigrate(out io.Writer, databaseURL, direction string) error {
	switch direction {
	case "up":
		if err := migrations.Up(databaseURL); err != nil {
			return err
		}
	case "down":
		if err := migrations.Down(databaseURL); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("migrate: unknown direction %q", direction)
	}

	version, dirty, err := migrations.Version(databaseURL)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
