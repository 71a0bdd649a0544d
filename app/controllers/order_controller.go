package controllers

import (
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
)

// OrderController serves the user's purchase history: PAID orders only,
// carts never appear here.
type OrderController struct {
	service *services.CartService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewCartService()}
}

// List handles GET /api/orders.
func (o *OrderController) List(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := o.service.Orders(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(orders)
}

// Show handles GET /api/orders/{id}.
func (o *OrderController) Show(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	order, err := o.service.Order(userID, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(order)
}
