package controllers

import (
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

// Show handles GET /api/cart.
func (ct *CartController) Show(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := ct.service.GetCart(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(cart)
}

// AddItem handles POST /api/cart/items.
func (ct *CartController) AddItem(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ComponentID uint `json:"componentId" validate:"required,gt=0"`
		Quantity    int  `json:"quantity" validate:"required,gte=1,lte=99"`
	}
	if !c.BindJSON(&input) {
		return
	}

	cart, err := ct.service.AddToCart(userID, input.ComponentID, input.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(cart)
}

// UpdateItem handles PATCH /api/cart/items/{id}.
func (ct *CartController) UpdateItem(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
	}
	if !c.BindJSON(&input) {
		return
	}

	cart, err := ct.service.UpdateItemQuantity(userID, itemID, input.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(cart)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (ct *CartController) RemoveItem(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	cart, err := ct.service.RemoveItem(userID, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(cart)
}

// Checkout handles POST /api/cart/checkout.
func (ct *CartController) Checkout(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := ct.service.Checkout(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(order)
}

// TransferBuild handles POST /api/cart/build/{id}: copies a saved build
// into the cart at current prices.
func (ct *CartController) TransferBuild(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	buildID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	cart, err := ct.service.TransferBuild(userID, buildID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(cart)
}
