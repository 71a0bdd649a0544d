package main

import (
	"github.com/spf13/cobra"

	"github.com/buildmaster/storefront/database/seeders"
	"github.com/buildmaster/storefront/internal/server"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return migration.New(database.DB).Run()
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last migration batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return migration.New(database.DB).Rollback()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin account and the component catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		if err := migration.New(database.DB).Run(); err != nil {
			return err
		}
		return seeders.Run(database.DB)
	},
}
