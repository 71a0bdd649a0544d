// Package services holds the storefront business logic: cart and checkout,
// saved builds, the compatibility wizard, catalogue management, auth and
// the chat assistant. Controllers translate the sentinel errors below into
// HTTP status codes; services never touch the response writer.
package services

import "errors"

var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput maps to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComponentUnavailable is returned when a component is inactive.
	ErrComponentUnavailable = errors.New("component is not available")

	// ErrInsufficientStock is returned when stock cannot cover a quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoActiveCart is returned by checkout when the user has no PENDING order.
	ErrNoActiveCart = errors.New("no active cart")

	// ErrEmptyCart is returned by checkout when the cart has no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrDuplicateName is returned when a saved-build name is already taken
	// by the same user.
	ErrDuplicateName = errors.New("a build with this name already exists")

	// ErrEmailTaken is returned by signup on a duplicate email.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials maps to 403 on login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is returned when a delete would orphan referencing rows,
	// e.g. removing a category that still has components.
	ErrConflict = errors.New("resource is referenced by other records")
)
