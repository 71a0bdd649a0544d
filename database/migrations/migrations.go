// Package migrations registers the storefront's schema migrations.
// Import for side effects:
//
//	_ "github.com/buildmaster/storefront/database/migrations"
package migrations
