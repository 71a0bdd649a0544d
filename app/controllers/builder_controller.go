package controllers

import (
	"net/http"

	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
)

// BuilderController drives the step-by-step PC builder.
type BuilderController struct {
	service *services.BuilderService
}

func NewBuilderController() *BuilderController {
	return &BuilderController{service: services.NewBuilderService()}
}

// ComponentsForStep handles GET /api/pc-build/components/{step}.
// The already-picked parts arrive as cpuId, moboId and gpuId query
// parameters and narrow the result to compatible components.
func (b *BuilderController) ComponentsForStep(c *ctx.Context) {
	step := c.Param("step")
	if step == "" {
		c.Error(http.StatusBadRequest, "A builder step is required")
		return
	}

	sel := services.Selection{
		CPUID:         uintQuery(c, "cpuId"),
		MotherboardID: uintQuery(c, "moboId"),
		GPUID:         uintQuery(c, "gpuId"),
	}

	components, err := b.service.ComponentsForStep(step, sel)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(components)
}
