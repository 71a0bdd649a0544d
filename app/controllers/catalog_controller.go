package controllers

import (
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
	"github.com/buildmaster/storefront/pkg/response"
)

// CatalogController serves the public catalogue and the admin CRUD.
// Admin routes are mounted behind rbac.HasRole("Admin"); the controller
// itself does no role checks.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{service: services.NewCatalogService()}
}

// ─── Public ───────────────────────────────────────────────────────────────────

// ListComponents handles GET /api/components with optional page, limit,
// categoryId and search query parameters.
func (cc *CatalogController) ListComponents(c *ctx.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)
	categoryID := uintQuery(c, "categoryId")
	search := c.Query("search")

	components, pagination, err := cc.service.Components(page, limit, categoryID, search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Paginated(c.W, components, pagination)
}

// ShowComponent handles GET /api/components/{id}.
func (cc *CatalogController) ShowComponent(c *ctx.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	component, err := cc.service.Component(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(component)
}

// RecentComponents handles GET /api/components/recent.
func (cc *CatalogController) RecentComponents(c *ctx.Context) {
	components, err := cc.service.Recent()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(components)
}

// ListCategories handles GET /api/categories.
func (cc *CatalogController) ListCategories(c *ctx.Context) {
	categories, err := cc.service.Categories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(categories)
}

// ─── Admin ────────────────────────────────────────────────────────────────────

// CreateCategory handles POST /api/admin/categories.
func (cc *CatalogController) CreateCategory(c *ctx.Context) {
	var input struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}
	if !c.BindJSON(&input) {
		return
	}

	category, err := cc.service.CreateCategory(input.Name, input.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Created(category)
}

// UpdateCategory handles PUT /api/admin/categories/{id}.
func (cc *CatalogController) UpdateCategory(c *ctx.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !c.BindJSON(&input) {
		return
	}

	category, err := cc.service.UpdateCategory(id, input.Name, input.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(category)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}.
func (cc *CatalogController) DeleteCategory(c *ctx.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := cc.service.DeleteCategory(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(map[string]string{"message": "Category deleted"})
}

// CreateComponent handles POST /api/admin/components.
func (cc *CatalogController) CreateComponent(c *ctx.Context) {
	var input services.ComponentInput
	if !c.BindJSON(&input) {
		return
	}

	component, err := cc.service.CreateComponent(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Created(component)
}

// UpdateComponent handles PUT /api/admin/components/{id}.
func (cc *CatalogController) UpdateComponent(c *ctx.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var input services.ComponentInput
	if !c.BindJSON(&input) {
		return
	}

	component, err := cc.service.UpdateComponent(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(component)
}

// DeleteComponent handles DELETE /api/admin/components/{id}.
func (cc *CatalogController) DeleteComponent(c *ctx.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := cc.service.DeleteComponent(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(map[string]string{"message": "Component deleted"})
}
