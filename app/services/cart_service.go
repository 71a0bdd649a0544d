package services

import (
	"errors"
	"fmt"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/event"
	"github.com/buildmaster/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartService manages the user's PENDING order and the checkout flow.
//
// Every mutation runs inside a transaction and ends by recomputing the
// order total from its lines, so the stored total always equals
// sum(unit_price x quantity).
type CartService struct {
	db *gorm.DB
}

func NewCartService() *CartService {
	return &CartService{db: database.DB}
}

// GetCart returns the user's PENDING order with items and components
// preloaded. A user without a pending order gets an empty cart
// representation rather than an error.
func (s *CartService) GetCart(userID uint) (models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items.Component").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{
			UserID: userID,
			Status: models.OrderStatusPending,
			Total:  decimal.Zero,
			Items:  []models.OrderItem{},
		}, nil
	}
	if err != nil {
		return models.Order{}, err
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

// AddToCart puts quantity units of a component into the user's cart,
// creating the PENDING order if needed. The component must be active and
// stock must cover the line's total quantity, existing units included
// (stock is only reserved at checkout). If the component is already in
// the cart the quantities are merged and the original frozen unit price
// is kept.
func (s *CartService) AddToCart(userID, componentID uint, quantity int) (models.Order, error) {
	if quantity < 1 {
		return models.Order{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		component, err := lockComponent(tx, componentID)
		if err != nil {
			return err
		}
		if !component.IsActive {
			return fmt.Errorf("%w: %s", ErrComponentUnavailable, component.Name)
		}

		order, err := findOrCreatePendingOrder(tx, userID)
		if err != nil {
			return err
		}

		var item models.OrderItem
		err = tx.Where("order_id = ? AND component_id = ?", order.ID, componentID).
			First(&item).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		merging := err == nil

		// The advisory check covers the whole line, not just the units
		// being added now.
		requested := item.Quantity + quantity
		if component.Stock < requested {
			return fmt.Errorf("%w: %s has %d left, cart asks for %d",
				ErrInsufficientStock, component.Name, component.Stock, requested)
		}

		if merging {
			item.Quantity = requested
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		} else {
			item = models.OrderItem{
				OrderID:     order.ID,
				ComponentID: componentID,
				Quantity:    quantity,
				UnitPrice:   component.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		return recomputeOrderTotal(tx, order.ID)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.CartItemsAdded.Add(float64(quantity))
	return s.GetCart(userID)
}

// UpdateItemQuantity sets the quantity of a cart line. The line must
// belong to the user's PENDING order, and live stock must cover the new
// quantity.
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (models.Order, error) {
	if quantity < 1 {
		return models.Order{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := findOwnedCartItem(tx, userID, itemID)
		if err != nil {
			return err
		}

		component, err := lockComponent(tx, item.ComponentID)
		if err != nil {
			return err
		}
		if !component.IsActive {
			return fmt.Errorf("%w: %s", ErrComponentUnavailable, component.Name)
		}
		if component.Stock < quantity {
			return fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, component.Name, component.Stock)
		}

		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return recomputeOrderTotal(tx, item.OrderID)
	})
	if err != nil {
		return models.Order{}, err
	}
	return s.GetCart(userID)
}

// RemoveItem deletes a line from the user's cart. Removing the last line
// leaves an empty PENDING order behind; checkout rejects it as empty.
func (s *CartService) RemoveItem(userID, itemID uint) (models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := findOwnedCartItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderItem{}, item.ID).Error; err != nil {
			return err
		}
		return recomputeOrderTotal(tx, item.OrderID)
	})
	if err != nil {
		return models.Order{}, err
	}
	return s.GetCart(userID)
}

// Checkout validates and pays the user's PENDING order.
//
// All lines are validated first (component active, stock covers the
// quantity); only then is stock decremented and the order flipped to PAID.
// Any failure rolls the whole transaction back, so a cart is either paid
// in full or untouched. Components are locked for the duration, which
// serialises concurrent checkouts competing for the same stock.
func (s *CartService) Checkout(userID uint) (models.Order, error) {
	var orderID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveCart
		}
		if err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return ErrEmptyCart
		}

		// Validate every line before touching stock.
		components := make(map[uint]*models.Component, len(order.Items))
		for _, item := range order.Items {
			component, err := lockComponent(tx, item.ComponentID)
			if err != nil {
				return err
			}
			if !component.IsActive {
				return fmt.Errorf("%w: %s", ErrComponentUnavailable, component.Name)
			}
			if component.Stock < item.Quantity {
				return fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, component.Name, component.Stock)
			}
			components[item.ComponentID] = component
		}

		for _, item := range order.Items {
			component := components[item.ComponentID]
			component.Stock -= item.Quantity
			if err := tx.Model(&models.Component{}).
				Where("id = ?", component.ID).
				Update("stock", component.Stock).Error; err != nil {
				return err
			}
		}

		if err := recomputeOrderTotal(tx, order.ID); err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderStatusPaid).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return models.Order{}, err
	}

	metrics.CheckoutsTotal.WithLabelValues("paid").Inc()

	var paid models.Order
	if err := s.db.Preload("Items.Component").Preload("User").First(&paid, orderID).Error; err != nil {
		return models.Order{}, err
	}
	event.FireAsync("order.paid", paid)
	return paid, nil
}

// TransferBuild copies a saved build into the user's cart. Each component
// is added with quantity 1 at its current catalogue price, merging into
// the existing PENDING order; the build's snapshot price is not used.
func (s *CartService) TransferBuild(userID, buildID uint) (models.Order, error) {
	var build models.SavedBuild
	err := s.db.Preload("Components").
		Where("id = ? AND user_id = ?", buildID, userID).
		First(&build).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, fmt.Errorf("%w: build %d", ErrNotFound, buildID)
	}
	if err != nil {
		return models.Order{}, err
	}
	if len(build.Components) == 0 {
		return models.Order{}, fmt.Errorf("%w: build has no components", ErrInvalidInput)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		order, err := findOrCreatePendingOrder(tx, userID)
		if err != nil {
			return err
		}

		for _, buildComponent := range build.Components {
			component, err := lockComponent(tx, buildComponent.ID)
			if err != nil {
				return err
			}
			if !component.IsActive {
				return fmt.Errorf("%w: %s", ErrComponentUnavailable, component.Name)
			}
			if component.Stock < 1 {
				return fmt.Errorf("%w: %s is out of stock", ErrInsufficientStock, component.Name)
			}

			var item models.OrderItem
			err = tx.Where("order_id = ? AND component_id = ?", order.ID, component.ID).
				First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				item = models.OrderItem{
					OrderID:     order.ID,
					ComponentID: component.ID,
					Quantity:    1,
					UnitPrice:   component.Price,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				item.Quantity++
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}
		}

		return recomputeOrderTotal(tx, order.ID)
	})
	if err != nil {
		return models.Order{}, err
	}
	return s.GetCart(userID)
}

// Orders returns the user's PAID orders, newest first.
func (s *CartService) Orders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Component").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusPaid).
		Order("created_at desc").
		Find(&orders).Error
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, err
}

// Order returns a single PAID order, checked for ownership.
func (s *CartService) Order(userID, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Component").
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, models.OrderStatusPaid).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return order, err
}

// PendingCartCount counts carts awaiting checkout; the scheduler feeds it
// into the pending-carts gauge.
func (s *CartService) PendingCartCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&count).Error
	return count, err
}

// ─── internal helpers ─────────────────────────────────────────────────────────

func lockComponent(tx *gorm.DB, componentID uint) (*models.Component, error) {
	var component models.Component
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&component, componentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: component %d", ErrNotFound, componentID)
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func findOrCreatePendingOrder(tx *gorm.DB, userID uint) (models.Order, error) {
	var order models.Order
	err := tx.Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		order = models.Order{
			UserID: userID,
			Status: models.OrderStatusPending,
			Total:  decimal.Zero,
		}
		if err := tx.Create(&order).Error; err != nil {
			return models.Order{}, err
		}
		return order, nil
	}
	return order, err
}

// findOwnedCartItem loads a cart line and verifies it belongs to the
// user's PENDING order. A line in someone else's cart is indistinguishable
// from a missing one.
func findOwnedCartItem(tx *gorm.DB, userID, itemID uint) (models.OrderItem, error) {
	var item models.OrderItem
	err := tx.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.id = ? AND orders.user_id = ? AND orders.status = ?",
			itemID, userID, models.OrderStatusPending).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OrderItem{}, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	return item, err
}

func recomputeOrderTotal(tx *gorm.DB, orderID uint) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total", total).Error
}
