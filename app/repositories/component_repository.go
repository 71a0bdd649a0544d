package repositories

import (
	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/orm"
)

// ComponentRepository handles read access to components.
type ComponentRepository struct{}

func NewComponentRepository() *ComponentRepository {
	return &ComponentRepository{}
}

// FindByID looks up a component by primary key.
func (r *ComponentRepository) FindByID(id uint) (models.Component, error) {
	var component models.Component
	err := orm.DB().Model(&models.Component{}).
		Preload("Category").
		Where("id = ?", id).
		First(&component)
	return component, err
}

// Active returns all active components, optionally limited to a category.
func (r *ComponentRepository) Active(categoryID uint) ([]models.Component, error) {
	q := orm.DB().Model(&models.Component{}).
		Preload("Category").
		Where("is_active = ?", true).
		Order("created_at desc")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}

	var components []models.Component
	err := q.Get(&components)
	return components, err
}

// All returns components with pagination, active or not.
func (r *ComponentRepository) All(page, limit int) ([]models.Component, orm.Pagination, error) {
	var components []models.Component
	pagination, err := orm.DB().Model(&models.Component{}).
		Order("created_at desc").
		GetWithPagination(&components, page, limit)
	return components, pagination, err
}
