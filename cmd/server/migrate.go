package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Manage the database schema of the configured DB_DRIVER.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back the latest migration
  version  - Show the current schema version`,
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(cmd, func(m migrator) error {
					if err := m.MigrateUp(); err != nil {
						return err
					}
					return a.printVersion(cmd, m)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(cmd, func(m migrator) error {
					if err := m.MigrateDown(); err != nil {
						return err
					}
					return a.printVersion(cmd, m)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(cmd, func(m migrator) error {
					return a.printVersion(cmd, m)
				})
			},
		},
	)

	return migrateCmd
}

func (a *app) withMigrator(cmd *cobra.Command, fn func(m migrator) error) error {
	store, err := openStore(cmd.Context(), a.cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (a *app) printVersion(cmd *cobra.Command, m migrator) error {
	version, dirty, err := m.MigrationVersion()
	if err != nil {
		return err
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, state)
	return nil
}
