package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/car-collection/config"
	pginfra "github.com/oksasatya/car-collection/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			return migrateUp(cfg, logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			m, err := pginfra.NewMigrator(cfg.PostgresDSN(), cfg.MigrationsDir, logger)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			return m.Down(steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			m, err := pginfra.NewMigrator(cfg.PostgresDSN(), cfg.MigrationsDir, logger)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			v, dirty, ok, err := m.Version()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func migrateUp(cfg *config.Config, logger *logrus.Logger) error {
	m, err := pginfra.NewMigrator(cfg.PostgresDSN(), cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}
