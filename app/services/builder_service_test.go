package services_test

import (
	"testing"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBuilderCatalogue creates a small catalogue covering every builder
// step, with deliberate incompatibilities to filter on.
type builderFixture struct {
	intelCPU, amdCPU          models.Component
	intelMobo, amdMobo        models.Component
	ddr5, ddr4                models.Component
	bigGPU, smallGPU          models.Component
	weakPSU, strongPSU        models.Component
	smallCase, bigCase, noSpecCase models.Component
}

func seedBuilderCatalogue(t *testing.T) builderFixture {
	t.Helper()

	cpus := createCategory(t, "Processeurs")
	mobos := createCategory(t, "Cartes Mères")
	ram := createCategory(t, "Mémoire RAM")
	gpus := createCategory(t, "Cartes Graphiques")
	psus := createCategory(t, "Alimentation")
	cases := createCategory(t, "Boîtiers")

	fx := builderFixture{}
	fx.intelCPU = createComponent(t, cpus.ID, "Intel CPU", "300.00", 5, map[string]interface{}{
		"socket": "LGA1700", "tdp": 125,
	})
	fx.amdCPU = createComponent(t, cpus.ID, "AMD CPU", "250.00", 5, map[string]interface{}{
		"socket": "AM5", "tdp": "120W", // annotated string must parse too
	})

	fx.intelMobo = createComponent(t, mobos.ID, "Intel board", "200.00", 5, map[string]interface{}{
		"socket": "LGA1700", "memoryType": "DDR5", "formFactor": "ATX",
	})
	fx.amdMobo = createComponent(t, mobos.ID, "AMD board", "180.00", 5, map[string]interface{}{
		"socket": "AM5", "memoryType": "DDR4", "formFactor": "Micro-ATX",
	})

	fx.ddr5 = createComponent(t, ram.ID, "DDR5 kit", "120.00", 5, map[string]interface{}{"type": "DDR5"})
	fx.ddr4 = createComponent(t, ram.ID, "DDR4 kit", "60.00", 5, map[string]interface{}{"type": "DDR4"})

	fx.bigGPU = createComponent(t, gpus.ID, "Big GPU", "1500.00", 5, map[string]interface{}{
		"tdp": 450, "length": 336,
	})
	fx.smallGPU = createComponent(t, gpus.ID, "Small GPU", "500.00", 5, map[string]interface{}{
		"tdp": 200, "length": 240,
	})

	fx.weakPSU = createComponent(t, psus.ID, "Weak PSU", "80.00", 5, map[string]interface{}{"wattage": 550})
	fx.strongPSU = createComponent(t, psus.ID, "Strong PSU", "180.00", 5, map[string]interface{}{"wattage": 1000})

	fx.smallCase = createComponent(t, cases.ID, "Small case", "90.00", 5, map[string]interface{}{
		"motherboardSupport": []string{"Micro-ATX", "Mini-ITX"}, "maxGPULength": 280,
	})
	fx.bigCase = createComponent(t, cases.ID, "Big case", "150.00", 5, map[string]interface{}{
		"motherboardSupport": []string{"ATX", "E-ATX"}, "maxGPULength": 420,
	})
	fx.noSpecCase = createComponent(t, cases.ID, "Mystery case", "60.00", 5, nil)

	return fx
}

func names(components []models.Component) []string {
	out := make([]string, 0, len(components))
	for _, c := range components {
		out = append(out, c.Name)
	}
	return out
}

func TestBuilderUnconstrainedStepListsAllInStock(t *testing.T) {
	setupDB(t)
	fx := seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	all, err := svc.ComponentsForStep("cpu", services.Selection{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fx.intelCPU.Name, fx.amdCPU.Name}, names(all))
}

func TestBuilderFiltersInactiveAndOutOfStock(t *testing.T) {
	setupDB(t)
	fx := seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	require.NoError(t, database.DB.Model(&models.Component{}).
		Where("id = ?", fx.intelCPU.ID).Update("stock", 0).Error)
	require.NoError(t, database.DB.Model(&models.Component{}).
		Where("id = ?", fx.amdCPU.ID).Update("is_active", false).Error)

	all, err := svc.ComponentsForStep("cpu", services.Selection{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBuilderMotherboardMatchesCPUSocket(t *testing.T) {
	setupDB(t)
	fx := seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	boards, err := svc.ComponentsForStep("motherboard", services.Selection{CPUID: fx.intelCPU.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Intel board"}, names(boards))

	boards, err = svc.ComponentsForStep("motherboard", services.Selection{CPUID: fx.amdCPU.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"AMD board"}, names(boards))
}

func TestBuilderRAMMatchesMotherboardMemoryType(t *testing.T) {
	setupDB(t)
	fx := seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	kits, err := svc.ComponentsForStep("ram", services.Selection{MotherboardID: fx.intelMobo.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"DDR5 kit"}, names(kits))

	kits, err = svc.ComponentsForStep("ram", services.Selection{MotherboardID: fx.amdMobo.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"DDR4 kit"}, names(kits))
}

func TestBuilderPSUNeedsHeadroomOverCombinedTDP(t *testing.T) {
	setupDB(t)
	fx := seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	// 1.5 x (125 + 450) = 862.5 — only the 1000W unit qualifies.
	units, err := svc.ComponentsForStep("psu", services.Selection{CPUID: fx.intelCPU.ID, GPUID: fx.bigGPU.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Strong PSU"}, names(units))

	// 1.5 x (120 + 200) = 480 — both qualify. The AMD CPU's TDP arrives
	// as the string "120W".
	units, err = svc.ComponentsForStep("psu", services.Selection{CPUID: fx.amdCPU.ID, GPUID: fx.smallGPU.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Weak PSU", "Strong PSU"}, names(units))

	// Without a GPU pick the step is unconstrained.
	units, err = svc.ComponentsForStep("psu", services.Selection{CPUID: fx.intelCPU.ID})
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestBuilderCaseChecksFormFactorAndGPULength(t *testing.T) {
	setupDB(t)
	fx := seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	// ATX board + 336mm GPU: only the big case fits. The case without
	// specifications must be excluded, not assumed compatible.
	enclosures, err := svc.ComponentsForStep("case", services.Selection{
		MotherboardID: fx.intelMobo.ID,
		GPUID:         fx.bigGPU.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Big case"}, names(enclosures))

	// Micro-ATX board + short GPU: only the small case fits.
	enclosures, err = svc.ComponentsForStep("case", services.Selection{
		MotherboardID: fx.amdMobo.ID,
		GPUID:         fx.smallGPU.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Small case"}, names(enclosures))
}

func TestBuilderUnknownStep(t *testing.T) {
	setupDB(t)
	seedBuilderCatalogue(t)
	svc := services.NewBuilderService()

	_, err := svc.ComponentsForStep("flux-capacitor", services.Selection{})
	assert.ErrorIs(t, err, services.ErrNotFound)
}
