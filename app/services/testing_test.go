package services_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestMain points the config loader at a scratch directory with a .env
// that enables the chat API, so the assistant tests can exercise the LLM
// path through a mocked transport.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "storefront-services-test")
	if err != nil {
		panic(err)
	}
	env := "CHAT_API_URL=http://llm.test/v1/chat/completions\n" +
		"CHAT_MODEL=test-model\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// setupDB connects a fresh in-memory database for one test and migrates
// the full schema. Services must be constructed after this call.
func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	require.NoError(t, database.ConnectDSN("sqlite", dsn))
	require.NoError(t, database.DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Component{},
		&models.Order{},
		&models.OrderItem{},
		&models.SavedBuild{},
	))
}

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, database.DB.Create(&category).Error)
	return category
}

func createComponent(t *testing.T, categoryID uint, name, price string, stock int, specs map[string]interface{}) models.Component {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)

	component := models.Component{
		Name:           name,
		Brand:          "Test",
		Price:          p,
		Stock:          stock,
		IsActive:       true,
		CategoryID:     categoryID,
		Specifications: specs,
	}
	require.NoError(t, database.DB.Create(&component).Error)
	return component
}

func setComponentActive(id uint, active bool) error {
	return database.DB.Model(&models.Component{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
