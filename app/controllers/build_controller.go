package controllers

import (
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
)

// BuildController manages the user's saved builds.
type BuildController struct {
	service *services.BuildService
}

func NewBuildController() *BuildController {
	return &BuildController{service: services.NewBuildService()}
}

// List handles GET /api/builds.
func (b *BuildController) List(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	builds, err := b.service.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(builds)
}

// Show handles GET /api/builds/{id}.
func (b *BuildController) Show(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	buildID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	build, err := b.service.Get(userID, buildID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(build)
}

// Create handles POST /api/builds.
func (b *BuildController) Create(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Name         string `json:"name" validate:"required"`
		ComponentIDs []uint `json:"componentIds"`
	}
	if !c.BindJSON(&input) {
		return
	}

	build, err := b.service.Save(userID, input.Name, input.ComponentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Created(build)
}

// Update handles PUT /api/builds/{id}.
func (b *BuildController) Update(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	buildID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Name         string `json:"name"`
		ComponentIDs []uint `json:"componentIds"`
	}
	if !c.BindJSON(&input) {
		return
	}

	build, err := b.service.Update(userID, buildID, input.Name, input.ComponentIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(build)
}

// Delete handles DELETE /api/builds/{id}.
func (b *BuildController) Delete(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	buildID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := b.service.Delete(userID, buildID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(map[string]string{"message": "Build deleted"})
}
