package services_test

import (
	"testing"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCartWithoutOrderIsEmpty(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cart, err := svc.GetCart(1)
	require.NoError(t, err)

	assert.Equal(t, uint(0), cart.ID)
	assert.Equal(t, models.OrderStatusPending, cart.Status)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestAddToCartMergesLinesAndFreezesPrice(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)

	cart, err := svc.AddToCart(1, cpu.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(money(t, "200.00")), "total %s", cart.Total)

	// Raise the catalogue price; the cart line must keep its frozen price.
	require.NoError(t, database.DB.Model(&models.Component{}).
		Where("id = ?", cpu.ID).
		Update("price", money(t, "150.00")).Error)

	cart, err = svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same component must merge into one line")
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].UnitPrice.Equal(money(t, "100.00")))
	assert.True(t, cart.Total.Equal(money(t, "300.00")), "total %s", cart.Total)
}

func TestAddToCartRejectsBadInput(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 2, nil)

	_, err := svc.AddToCart(1, cpu.ID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.AddToCart(1, cpu.ID, 3)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	_, err = svc.AddToCart(1, 999, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, database.DB.Model(&models.Component{}).
		Where("id = ?", cpu.ID).
		Update("is_active", false).Error)
	_, err = svc.AddToCart(1, cpu.ID, 1)
	assert.ErrorIs(t, err, services.ErrComponentUnavailable)
}

func TestAddToCartChecksStockAgainstWholeLine(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 5, nil)

	_, err := svc.AddToCart(1, cpu.ID, 4)
	require.NoError(t, err)

	// 4 already in the cart: adding 3 would need 7 of the 5 in stock.
	_, err = svc.AddToCart(1, cpu.ID, 3)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	cart, err := svc.GetCart(1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity, "rejected add must not change the line")

	// Topping up to exactly the stock is fine.
	cart, err = svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateItemQuantityIsStockChecked(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 2, nil)

	cart, err := svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(1, cart.Items[0].ID, 50)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	cart, err = svc.GetCart(1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity, "rejected update must not stick")

	cart, err = svc.UpdateItemQuantity(1, cart.Items[0].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateAndRemoveItemRecomputeTotal(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)
	gpu := createComponent(t, cat.ID, "GPU", "400.00", 10, nil)

	cart, err := svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)
	cart, err = svc.AddToCart(1, gpu.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = svc.UpdateItemQuantity(1, cart.Items[0].ID, 3)
	require.NoError(t, err)
	assert.True(t, cart.Total.Equal(money(t, "700.00")), "total %s", cart.Total)

	_, err = svc.UpdateItemQuantity(1, cart.Items[0].ID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	// Removing everything leaves an empty pending cart behind.
	for _, item := range cart.Items {
		cart, err = svc.RemoveItem(1, item.ID)
		require.NoError(t, err)
	}
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	_, err = svc.Checkout(1)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCartItemsAreOwnershipChecked(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)

	cart, err := svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)

	// Another user cannot touch this line.
	_, err = svc.UpdateItemQuantity(2, cart.Items[0].ID, 5)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.RemoveItem(2, cart.Items[0].ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCheckoutPaysCartAndDecrementsStock(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 5, nil)

	_, err := svc.AddToCart(1, cpu.ID, 2)
	require.NoError(t, err)

	order, err := svc.Checkout(1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.True(t, order.Total.Equal(money(t, "200.00")))

	var component models.Component
	require.NoError(t, database.DB.First(&component, cpu.ID).Error)
	assert.Equal(t, 3, component.Stock)

	// The cart is gone now.
	_, err = svc.Checkout(1)
	assert.ErrorIs(t, err, services.ErrNoActiveCart)

	orders, err := svc.Orders(1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckoutIsAllOrNothing(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 5, nil)
	rare := createComponent(t, cat.ID, "Rare GPU", "900.00", 1, nil)

	// Both users put the last rare unit in their carts; the advisory
	// check allows it because stock is only reserved at checkout.
	_, err := svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(1, rare.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(2, rare.ID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(1)
	require.NoError(t, err)

	// The second checkout must fail whole, leaving its cart intact.
	_, err = svc.Checkout(2)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	cart, err := svc.GetCart(2)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, models.OrderStatusPending, cart.Status)

	var component models.Component
	require.NoError(t, database.DB.First(&component, rare.ID).Error)
	assert.Equal(t, 0, component.Stock, "failed checkout must not touch stock")
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	rare := createComponent(t, cat.ID, "Rare GPU", "900.00", 1, nil)

	_, err := svc.AddToCart(1, rare.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(2, rare.ID, 1)
	require.NoError(t, err)

	// A single connection serialises the two transactions the way the
	// row locks do on a server database.
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	errs := make(chan error, 2)
	for _, userID := range []uint{1, 2} {
		go func(id uint) {
			_, err := svc.Checkout(id)
			errs <- err
		}(userID)
	}

	var failures []error
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			failures = append(failures, err)
		}
	}
	require.Len(t, failures, 1, "exactly one checkout must win")
	assert.ErrorIs(t, failures[0], services.ErrInsufficientStock)

	var component models.Component
	require.NoError(t, database.DB.First(&component, rare.ID).Error)
	assert.Equal(t, 0, component.Stock, "stock must never go negative")

	var paid int64
	require.NoError(t, database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Count(&paid).Error)
	assert.Equal(t, int64(1), paid)
}

func TestOrdersOnlyShowPaidAndOwn(t *testing.T) {
	setupDB(t)
	svc := services.NewCartService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)

	_, err := svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)
	paid, err := svc.Checkout(1)
	require.NoError(t, err)

	// A fresh pending cart must not appear in the history.
	_, err = svc.AddToCart(1, cpu.ID, 1)
	require.NoError(t, err)

	orders, err := svc.Orders(1)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = svc.Order(2, paid.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestTransferBuildUsesCurrentPrices(t *testing.T) {
	setupDB(t)
	cartSvc := services.NewCartService()
	buildSvc := services.NewBuildService()

	cat := createCategory(t, "Processeurs")
	cpu := createComponent(t, cat.ID, "CPU", "100.00", 10, nil)
	gpu := createComponent(t, cat.ID, "GPU", "400.00", 10, nil)

	build, err := buildSvc.Save(1, "Gaming rig", []uint{cpu.ID, gpu.ID})
	require.NoError(t, err)
	assert.True(t, build.TotalPrice.Equal(money(t, "500.00")))

	// The build snapshot keeps the old price; the cart must not.
	require.NoError(t, database.DB.Model(&models.Component{}).
		Where("id = ?", cpu.ID).
		Update("price", money(t, "150.00")).Error)

	cart, err := cartSvc.TransferBuild(1, build.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Total.Equal(money(t, "550.00")), "total %s", cart.Total)

	// Transferring again merges into the same lines.
	cart, err = cartSvc.TransferBuild(1, build.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Total.Equal(money(t, "1100.00")), "total %s", cart.Total)

	_, err = cartSvc.TransferBuild(2, build.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
