package migrations

import (
	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20250301000000_create_users_table", &createUsersTable{})
	migration.Register("20250301000001_create_catalog_tables", &createCatalogTables{})
	migration.Register("20250301000002_create_order_tables", &createOrderTables{})
	migration.Register("20250301000003_create_saved_build_tables", &createSavedBuildTables{})
}

type createUsersTable struct{}

func (m *createUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *createUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

type createCatalogTables struct{}

func (m *createCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Component{})
}

func (m *createCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("components", "component_categories")
}

type createOrderTables struct{}

func (m *createOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *createOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

type createSavedBuildTables struct{}

func (m *createSavedBuildTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.SavedBuild{})
}

func (m *createSavedBuildTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("saved_build_components", "saved_builds")
}
