package services_test

import (
	"testing"

	"github.com/buildmaster/storefront/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsPaginationAndFilters(t *testing.T) {
	setupDB(t)
	svc := services.NewCatalogService()

	cpus := createCategory(t, "Processeurs")
	gpus := createCategory(t, "Cartes Graphiques")
	createComponent(t, cpus.ID, "Ryzen 9", "450.00", 5, nil)
	createComponent(t, cpus.ID, "Core i9", "550.00", 5, nil)
	createComponent(t, gpus.ID, "RTX 4090", "1800.00", 2, nil)

	inactive := createComponent(t, cpus.ID, "Old CPU", "50.00", 5, nil)
	require.NoError(t, setComponentActive(inactive.ID, false))

	all, pagination, err := svc.Components(1, 10, 0, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "inactive components stay hidden")
	assert.Equal(t, int64(3), pagination.Total)

	cpuOnly, _, err := svc.Components(1, 10, cpus.ID, "")
	require.NoError(t, err)
	assert.Len(t, cpuOnly, 2)

	searched, _, err := svc.Components(1, 10, 0, "ryzen")
	require.NoError(t, err)
	if assert.Len(t, searched, 1) {
		assert.Equal(t, "Ryzen 9", searched[0].Name)
		require.NotNil(t, searched[0].Category)
		assert.Equal(t, "Processeurs", searched[0].Category.Name)
	}

	paged, pagination, err := svc.Components(2, 2, 0, "")
	require.NoError(t, err)
	assert.Len(t, paged, 1)
	assert.Equal(t, 2, pagination.Page)
}

func TestComponentNotFound(t *testing.T) {
	setupDB(t)
	svc := services.NewCatalogService()

	_, err := svc.Component(42)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Deactivated components disappear from the public read too.
	cat := createCategory(t, "Processeurs")
	hidden := createComponent(t, cat.ID, "Hidden CPU", "100.00", 5, nil)
	require.NoError(t, setComponentActive(hidden.ID, false))
	_, err = svc.Component(hidden.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCategoryCRUDGuards(t *testing.T) {
	setupDB(t)
	svc := services.NewCatalogService()

	_, err := svc.CreateCategory("  ", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	cat, err := svc.CreateCategory("Stockage", "SSDs and HDDs")
	require.NoError(t, err)

	_, err = svc.CreateCategory("Stockage", "")
	assert.ErrorIs(t, err, services.ErrDuplicateName)

	// A category with components cannot be removed.
	createComponent(t, cat.ID, "SSD", "100.00", 5, nil)
	assert.ErrorIs(t, svc.DeleteCategory(cat.ID), services.ErrConflict)

	empty, err := svc.CreateCategory("Ventilation", "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(empty.ID))
	assert.ErrorIs(t, svc.DeleteCategory(empty.ID), services.ErrNotFound)
}

func TestCreateComponentValidation(t *testing.T) {
	setupDB(t)
	svc := services.NewCatalogService()

	cat := createCategory(t, "Processeurs")

	_, err := svc.CreateComponent(services.ComponentInput{CategoryID: cat.ID})
	assert.ErrorIs(t, err, services.ErrInvalidInput, "name is required")

	_, err = svc.CreateComponent(services.ComponentInput{
		Name: "CPU", Price: money(t, "-1.00"), CategoryID: cat.ID,
	})
	assert.ErrorIs(t, err, services.ErrInvalidInput, "negative price")

	_, err = svc.CreateComponent(services.ComponentInput{Name: "CPU", Price: money(t, "100.00")})
	assert.ErrorIs(t, err, services.ErrInvalidInput, "category is required")

	_, err = svc.CreateComponent(services.ComponentInput{
		Name: "CPU", Price: money(t, "100.00"), CategoryID: 999,
	})
	assert.ErrorIs(t, err, services.ErrNotFound, "category must exist")

	created, err := svc.CreateComponent(services.ComponentInput{
		Name:       " Ryzen 7 ",
		Brand:      "AMD",
		Price:      money(t, "329.99"),
		Stock:      12,
		CategoryID: cat.ID,
		Specifications: map[string]interface{}{
			"socket": "AM5", "tdp": 105,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ryzen 7", created.Name)
	assert.True(t, created.IsActive, "components default to active")
}

func TestUpdateComponentIsPartial(t *testing.T) {
	setupDB(t)
	svc := services.NewCatalogService()

	cat := createCategory(t, "Processeurs")
	component := createComponent(t, cat.ID, "Ryzen 7", "329.99", 12, map[string]interface{}{"socket": "AM5"})

	inactive := false
	updated, err := svc.UpdateComponent(component.ID, services.ComponentInput{
		Stock:    3,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ryzen 7", updated.Name, "name untouched")
	assert.True(t, updated.Price.Equal(money(t, "329.99")), "price untouched")
	assert.Equal(t, 3, updated.Stock)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateComponent(999, services.ComponentInput{})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteComponentRefusesWhenReferenced(t *testing.T) {
	setupDB(t)
	catalog := services.NewCatalogService()
	cart := services.NewCartService()
	builds := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	ordered := createComponent(t, cat.ID, "Ordered CPU", "100.00", 5, nil)
	saved := createComponent(t, cat.ID, "Saved CPU", "100.00", 5, nil)
	free := createComponent(t, cat.ID, "Free CPU", "100.00", 5, nil)

	_, err := cart.AddToCart(1, ordered.ID, 1)
	require.NoError(t, err)
	_, err = builds.Save(1, "Rig", []uint{saved.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, catalog.DeleteComponent(ordered.ID), services.ErrConflict)
	assert.ErrorIs(t, catalog.DeleteComponent(saved.ID), services.ErrConflict)
	require.NoError(t, catalog.DeleteComponent(free.ID))
	assert.ErrorIs(t, catalog.DeleteComponent(free.ID), services.ErrNotFound)
}

func TestRecentListsNewestTen(t *testing.T) {
	setupDB(t)
	svc := services.NewCatalogService()

	cat := createCategory(t, "Processeurs")
	for i := 0; i < 12; i++ {
		createComponent(t, cat.ID, "CPU", "100.00", 5, nil)
	}

	recent, err := svc.Recent()
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}
