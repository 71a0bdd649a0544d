package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/cache"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/event"
	"github.com/buildmaster/storefront/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalogue read caching. Hot listing endpoints are cached for a minute;
// every admin write flushes the whole prefix.
const (
	catalogCachePrefix = "storefront:catalog:"
	catalogCacheTTL    = 60 * time.Second
)

// CatalogService serves the public catalogue and the admin CRUD behind it.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService() *CatalogService {
	return &CatalogService{db: database.DB}
}

// ─── Public reads ─────────────────────────────────────────────────────────────

// Components returns one page of active components, optionally narrowed to
// a category or a name search. Unfiltered pages are not cached; the
// paginated listing is cheap and filters vary too much to be worth keying.
func (s *CatalogService) Components(page, limit int, categoryID uint, search string) ([]models.Component, orm.Pagination, error) {
	q := orm.DB().Model(&models.Component{}).
		Preload("Category").
		Where("is_active = ?", true).
		Order("created_at desc")

	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var components []models.Component
	pagination, err := q.GetWithPagination(&components, page, limit)
	if components == nil {
		components = []models.Component{}
	}
	return components, pagination, err
}

// Component returns one component with its category. Inactive components
// are hidden from the public read; admins reach them through the CRUD path.
func (s *CatalogService) Component(id uint) (models.Component, error) {
	var component models.Component
	err := s.db.Preload("Category").First(&component, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Component{}, fmt.Errorf("%w: component %d", ErrNotFound, id)
	}
	if err != nil {
		return models.Component{}, err
	}
	if !component.IsActive {
		return models.Component{}, fmt.Errorf("%w: component %d", ErrNotFound, id)
	}
	return component, nil
}

// Recent returns the ten newest active components, cached for a minute.
func (s *CatalogService) Recent() ([]models.Component, error) {
	var components []models.Component
	err := orm.DB().Model(&models.Component{}).
		Where("is_active = ?", true).
		Order("created_at desc").
		Limit(10).
		Cache(catalogCachePrefix+"recent", catalogCacheTTL, &components)
	return components, err
}

// Categories returns all categories, cached for a minute.
func (s *CatalogService) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).
		Order("id asc").
		Cache(catalogCachePrefix+"categories", catalogCacheTTL, &categories)
	return categories, err
}

// ─── Admin: categories ────────────────────────────────────────────────────────

func (s *CatalogService) CreateCategory(name, description string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return models.Category{}, err
	}
	if count > 0 {
		return models.Category{}, fmt.Errorf("%w: category %q already exists", ErrDuplicateName, name)
	}

	category := models.Category{Name: name, Description: description}
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	s.bustCache()
	return category, nil
}

func (s *CatalogService) UpdateCategory(id uint, name, description string) (models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if err != nil {
		return models.Category{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}
	if err := s.db.Save(&category).Error; err != nil {
		return models.Category{}, err
	}
	s.bustCache()
	return category, nil
}

// DeleteCategory refuses to remove a category that still has components.
func (s *CatalogService) DeleteCategory(id uint) error {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Component{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category %q has %d components", ErrConflict, category.Name, count)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return err
	}
	s.bustCache()
	return nil
}

// ─── Admin: components ────────────────────────────────────────────────────────

// ComponentInput carries the admin create/update payload. Field presence
// is checked by the service so the same input works for partial updates.
type ComponentInput struct {
	Name           string                 `json:"name"`
	Brand          string                 `json:"brand"`
	Price          decimal.Decimal        `json:"price"`
	Stock          int                    `json:"stock" validate:"gte=0"`
	IsActive       *bool                  `json:"isActive"`
	ImageURL       string                 `json:"imageUrl"`
	CategoryID     uint                   `json:"categoryId"`
	Specifications map[string]interface{} `json:"specifications"`
}

func (s *CatalogService) CreateComponent(input ComponentInput) (models.Component, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Component{}, fmt.Errorf("%w: component name is required", ErrInvalidInput)
	}
	if input.Price.IsNegative() {
		return models.Component{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if err := s.ensureCategory(input.CategoryID); err != nil {
		return models.Component{}, err
	}

	component := models.Component{
		Name:           strings.TrimSpace(input.Name),
		Brand:          input.Brand,
		Price:          input.Price,
		Stock:          input.Stock,
		IsActive:       true,
		ImageURL:       input.ImageURL,
		CategoryID:     input.CategoryID,
		Specifications: input.Specifications,
	}
	if input.IsActive != nil {
		component.IsActive = *input.IsActive
	}

	if err := s.db.Create(&component).Error; err != nil {
		return models.Component{}, err
	}
	s.bustCache()
	event.FireAsync("component.created", component)
	return component, nil
}

func (s *CatalogService) UpdateComponent(id uint, input ComponentInput) (models.Component, error) {
	var component models.Component
	err := s.db.First(&component, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Component{}, fmt.Errorf("%w: component %d", ErrNotFound, id)
	}
	if err != nil {
		return models.Component{}, err
	}

	if input.Price.IsNegative() {
		return models.Component{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if input.CategoryID != 0 && input.CategoryID != component.CategoryID {
		if err := s.ensureCategory(input.CategoryID); err != nil {
			return models.Component{}, err
		}
		component.CategoryID = input.CategoryID
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		component.Name = name
	}
	if input.Brand != "" {
		component.Brand = input.Brand
	}
	if !input.Price.IsZero() {
		component.Price = input.Price
	}
	if input.Stock >= 0 {
		component.Stock = input.Stock
	}
	if input.IsActive != nil {
		component.IsActive = *input.IsActive
	}
	if input.ImageURL != "" {
		component.ImageURL = input.ImageURL
	}
	if input.Specifications != nil {
		component.Specifications = input.Specifications
	}

	if err := s.db.Save(&component).Error; err != nil {
		return models.Component{}, err
	}
	s.bustCache()
	event.FireAsync("component.updated", component)
	return component, nil
}

// DeleteComponent refuses to remove a component referenced by order lines
// or saved builds; deactivate it instead.
func (s *CatalogService) DeleteComponent(id uint) error {
	var component models.Component
	err := s.db.First(&component, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: component %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.OrderItem{}).Where("component_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: component %q appears in %d orders", ErrConflict, component.Name, refs)
	}

	if err := s.db.Table("saved_build_components").Where("component_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: component %q is used by %d saved builds", ErrConflict, component.Name, refs)
	}

	if err := s.db.Delete(&component).Error; err != nil {
		return err
	}
	s.bustCache()
	return nil
}

func (s *CatalogService) ensureCategory(id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: categoryId is required", ErrInvalidInput)
	}
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return nil
}

func (s *CatalogService) bustCache() {
	// Stale listings expire within the TTL anyway, so failure is tolerable.
	cache.FlushPrefix(catalogCachePrefix) //nolint:errcheck
}
