package services

import (
	"errors"
	"fmt"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/collection"
	"github.com/buildmaster/storefront/pkg/database"
	"gorm.io/gorm"
)

// BuilderService powers the step-by-step PC builder. Each step lists the
// components of one category filtered down to those compatible with the
// parts already picked.
//
// Compatibility rules:
//
//	motherboard  socket must equal the CPU socket
//	ram          memory type must equal the motherboard memory type
//	psu          wattage must cover 1.5x the combined CPU and GPU TDP
//	case         must support the motherboard form factor and fit the GPU
//
// A component whose specification document is missing the fields a rule
// needs is treated as incompatible and filtered out.
type BuilderService struct {
	db *gorm.DB
}

func NewBuilderService() *BuilderService {
	return &BuilderService{db: database.DB}
}

// psuHeadroom is the safety multiplier applied to the combined TDP when
// sizing a power supply.
const psuHeadroom = 1.5

// categoryNames maps builder step slugs to catalogue category names.
var categoryNames = map[string]string{
	"cpu":         "Processeurs",
	"motherboard": "Cartes Mères",
	"ram":         "Mémoire RAM",
	"gpu":         "Cartes Graphiques",
	"storage":     "Stockage",
	"psu":         "Alimentation",
	"case":        "Boîtiers",
}

// Selection holds the components the user has already picked. Zero IDs
// mean "not picked yet".
type Selection struct {
	CPUID         uint
	MotherboardID uint
	GPUID         uint
}

// ComponentsForStep returns the active, in-stock components of a builder
// step that are compatible with the current selection.
func (s *BuilderService) ComponentsForStep(step string, sel Selection) ([]models.Component, error) {
	categoryName, ok := categoryNames[step]
	if !ok {
		// Allow passing a category name directly.
		categoryName = step
	}

	var category models.Category
	err := s.db.Where("name = ?", categoryName).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown builder step %q", ErrNotFound, step)
	}
	if err != nil {
		return nil, err
	}

	var candidates []models.Component
	err = s.db.Where("category_id = ? AND is_active = ? AND stock > 0", category.ID, true).
		Order("price desc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	predicate, err := s.predicateForStep(step, sel)
	if err != nil {
		return nil, err
	}
	if predicate == nil {
		return candidates, nil
	}

	compatible := collection.Filter(candidates, predicate)
	if compatible == nil {
		compatible = []models.Component{}
	}
	return compatible, nil
}

// predicateForStep builds the compatibility filter for a step, or nil when
// the step is unconstrained by the current selection.
func (s *BuilderService) predicateForStep(step string, sel Selection) (func(models.Component) bool, error) {
	switch step {
	case "motherboard":
		if sel.CPUID == 0 {
			return nil, nil
		}
		cpu, err := s.selected(sel.CPUID)
		if err != nil {
			return nil, err
		}
		socket := cpu.CPUSpecs().Socket
		return func(c models.Component) bool {
			mobo := c.MotherboardSpecs()
			return socket != "" && mobo.Socket == socket
		}, nil

	case "ram":
		if sel.MotherboardID == 0 {
			return nil, nil
		}
		mobo, err := s.selected(sel.MotherboardID)
		if err != nil {
			return nil, err
		}
		memoryType := mobo.MotherboardSpecs().MemoryType
		return func(c models.Component) bool {
			return memoryType != "" && c.RAMSpecs().Type == memoryType
		}, nil

	case "psu":
		if sel.CPUID == 0 || sel.GPUID == 0 {
			return nil, nil
		}
		cpu, err := s.selected(sel.CPUID)
		if err != nil {
			return nil, err
		}
		gpu, err := s.selected(sel.GPUID)
		if err != nil {
			return nil, err
		}
		cpuSpecs := cpu.CPUSpecs()
		gpuSpecs := gpu.GPUSpecs()
		if !cpuSpecs.HasTDP || !gpuSpecs.HasTDP {
			// Cannot size the PSU without both TDPs.
			return func(models.Component) bool { return false }, nil
		}
		required := psuHeadroom * (cpuSpecs.TDP + gpuSpecs.TDP)
		return func(c models.Component) bool {
			psu := c.PSUSpecs()
			return psu.HasWattage && psu.Wattage >= required
		}, nil

	case "case":
		if sel.MotherboardID == 0 && sel.GPUID == 0 {
			return nil, nil
		}

		var formFactor string
		if sel.MotherboardID != 0 {
			mobo, err := s.selected(sel.MotherboardID)
			if err != nil {
				return nil, err
			}
			formFactor = mobo.MotherboardSpecs().FormFactor
		}

		var gpuSpecs models.GPUSpecs
		checkGPU := sel.GPUID != 0
		if checkGPU {
			gpu, err := s.selected(sel.GPUID)
			if err != nil {
				return nil, err
			}
			gpuSpecs = gpu.GPUSpecs()
		}

		return func(c models.Component) bool {
			caseSpecs := c.CaseSpecs()
			if formFactor != "" {
				supported := collection.Contains(caseSpecs.MotherboardSupport, func(f string) bool {
					return f == formFactor
				})
				if !supported {
					return false
				}
			} else if sel.MotherboardID != 0 {
				// Motherboard picked but its form factor is unknown.
				return false
			}
			if checkGPU {
				if !caseSpecs.HasMaxGPULength || !gpuSpecs.HasLength {
					return false
				}
				if caseSpecs.MaxGPULength < gpuSpecs.Length {
					return false
				}
			}
			return true
		}, nil
	}

	return nil, nil
}

func (s *BuilderService) selected(id uint) (models.Component, error) {
	var component models.Component
	err := s.db.First(&component, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Component{}, fmt.Errorf("%w: selected component %d", ErrNotFound, id)
	}
	return component, err
}
