package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildmaster/storefront/app/routes"
	"github.com/buildmaster/storefront/internal/server"
	"github.com/buildmaster/storefront/pkg/router"
)

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		r := router.New()
		routes.RegisterAPI(r)

		fmt.Printf("%-8s %-45s %s\n", "Method", "Path", "Name")
		for _, entry := range r.Routes() {
			fmt.Printf("%-8s %-45s %s\n", entry.Method, entry.Path, entry.Name)
		}
		return nil
	},
}
