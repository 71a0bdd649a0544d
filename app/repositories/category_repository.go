package repositories

import (
	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/orm"
)

// CategoryRepository handles read access to categories.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category ordered by ID.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("id asc").Get(&categories)
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}
