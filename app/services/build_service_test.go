package services_test

import (
	"testing"
	"time"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBuildValidation(t *testing.T) {
	setupDB(t)
	svc := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)

	_, err := svc.Save(1, "   ", []uint{cpu.ID})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Save(1, "Rig", nil)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Save(1, "Rig", []uint{cpu.ID, 999})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestBuildNamesUniquePerUser(t *testing.T) {
	setupDB(t)
	svc := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)

	_, err := svc.Save(1, "Gaming rig", []uint{cpu.ID})
	require.NoError(t, err)

	_, err = svc.Save(1, "Gaming rig", []uint{cpu.ID})
	assert.ErrorIs(t, err, services.ErrDuplicateName)

	// A different user may reuse the name.
	_, err = svc.Save(2, "Gaming rig", []uint{cpu.ID})
	require.NoError(t, err)
}

func TestListBuildsReturnsSummariesNewestFirst(t *testing.T) {
	setupDB(t)
	svc := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)
	gpu := createComponent(t, cat.ID, "GPU", "400.00", 10, nil)

	first, err := svc.Save(1, "Older", []uint{cpu.ID})
	require.NoError(t, err)
	// Separate the timestamps so the ordering is deterministic.
	require.NoError(t, database.DB.Model(&models.SavedBuild{}).
		Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	_, err = svc.Save(1, "Newer", []uint{cpu.ID, gpu.ID})
	require.NoError(t, err)
	_, err = svc.Save(2, "Other user", []uint{gpu.ID})
	require.NoError(t, err)

	summaries, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Newer", summaries[0].Name)
	assert.Equal(t, "Older", summaries[1].Name)
	assert.True(t, summaries[0].TotalPrice.Equal(money(t, "500.00")))
}

func TestUpdateBuildReplacesComponentsAndReprices(t *testing.T) {
	setupDB(t)
	svc := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)
	gpu := createComponent(t, cat.ID, "GPU", "400.00", 10, nil)

	build, err := svc.Save(1, "Rig", []uint{cpu.ID})
	require.NoError(t, err)

	updated, err := svc.Update(1, build.ID, "Better rig", []uint{gpu.ID})
	require.NoError(t, err)
	assert.Equal(t, "Better rig", updated.Name)
	require.Len(t, updated.Components, 1)
	assert.Equal(t, gpu.ID, updated.Components[0].ID)
	assert.True(t, updated.TotalPrice.Equal(money(t, "400.00")))

	// Nil component set keeps the existing one.
	updated, err = svc.Update(1, build.ID, "Renamed", nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, updated.Components, 1)
}

func TestDeleteBuildIsOwnershipChecked(t *testing.T) {
	setupDB(t)
	svc := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)

	build, err := svc.Save(1, "Rig", []uint{cpu.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(2, build.ID), services.ErrNotFound)
	require.NoError(t, svc.Delete(1, build.ID))

	_, err = svc.Get(1, build.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
