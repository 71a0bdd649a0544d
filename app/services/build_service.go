package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BuildService manages saved PC builds. Build names are unique per user;
// TotalPrice is snapshotted from component prices at save time.
type BuildService struct {
	db *gorm.DB
}

func NewBuildService() *BuildService {
	return &BuildService{db: database.DB}
}

// List returns summaries of the user's builds, newest first. The full
// component list is only loaded by Get.
func (s *BuildService) List(userID uint) ([]models.BuildSummary, error) {
	var summaries []models.BuildSummary
	err := s.db.Model(&models.SavedBuild{}).
		Select("id, name, total_price, created_at").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&summaries).Error
	if summaries == nil {
		summaries = []models.BuildSummary{}
	}
	return summaries, err
}

// Get returns a build with its components, checked for ownership.
func (s *BuildService) Get(userID, buildID uint) (models.SavedBuild, error) {
	var build models.SavedBuild
	err := s.db.Preload("Components").
		Where("id = ? AND user_id = ?", buildID, userID).
		First(&build).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SavedBuild{}, fmt.Errorf("%w: build %d", ErrNotFound, buildID)
	}
	return build, err
}

// Save creates a new build from a name and a component set.
func (s *BuildService) Save(userID uint, name string, componentIDs []uint) (models.SavedBuild, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedBuild{}, fmt.Errorf("%w: build name is required", ErrInvalidInput)
	}
	if len(componentIDs) == 0 {
		return models.SavedBuild{}, fmt.Errorf("%w: a build needs at least one component", ErrInvalidInput)
	}

	var build models.SavedBuild
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.nameTaken(tx, userID, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}

		components, err := loadComponents(tx, componentIDs)
		if err != nil {
			return err
		}

		build = models.SavedBuild{
			UserID:     userID,
			Name:       name,
			TotalPrice: sumPrices(components),
			Components: components,
		}
		return tx.Create(&build).Error
	})
	if err != nil {
		return models.SavedBuild{}, err
	}
	return build, nil
}

// Update renames a build and/or replaces its component set. Passing nil
// componentIDs keeps the current set; passing an empty slice is invalid.
func (s *BuildService) Update(userID, buildID uint, name string, componentIDs []uint) (models.SavedBuild, error) {
	name = strings.TrimSpace(name)
	if componentIDs != nil && len(componentIDs) == 0 {
		return models.SavedBuild{}, fmt.Errorf("%w: a build needs at least one component", ErrInvalidInput)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var build models.SavedBuild
		err := tx.Where("id = ? AND user_id = ?", buildID, userID).First(&build).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: build %d", ErrNotFound, buildID)
		}
		if err != nil {
			return err
		}

		if name != "" && name != build.Name {
			taken, err := s.nameTaken(tx, userID, name, build.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateName
			}
			build.Name = name
		}

		if componentIDs != nil {
			components, err := loadComponents(tx, componentIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&build).Association("Components").Replace(components); err != nil {
				return err
			}
			build.TotalPrice = sumPrices(components)
		}

		return tx.Save(&build).Error
	})
	if err != nil {
		return models.SavedBuild{}, err
	}
	return s.Get(userID, buildID)
}

// Delete removes a build and its component associations.
func (s *BuildService) Delete(userID, buildID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var build models.SavedBuild
		err := tx.Where("id = ? AND user_id = ?", buildID, userID).First(&build).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: build %d", ErrNotFound, buildID)
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&build).Association("Components").Clear(); err != nil {
			return err
		}
		return tx.Delete(&build).Error
	})
}

func (s *BuildService) nameTaken(tx *gorm.DB, userID uint, name string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.SavedBuild{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// loadComponents fetches all requested components and fails if any ID is
// unknown.
func loadComponents(tx *gorm.DB, ids []uint) ([]models.Component, error) {
	var components []models.Component
	if err := tx.Where("id IN ?", ids).Find(&components).Error; err != nil {
		return nil, err
	}

	if len(components) != len(uniqueIDs(ids)) {
		return nil, fmt.Errorf("%w: one or more components do not exist", ErrNotFound)
	}
	return components, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	var out []uint
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func sumPrices(components []models.Component) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(c.Price)
	}
	return total
}
