// Package controllers translates HTTP requests into service calls and
// service errors into HTTP responses.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
	"github.com/buildmaster/storefront/pkg/logger"
)

// respondServiceError maps the service sentinel errors onto HTTP status
// codes. Anything unrecognised is logged and reported as a 500 without
// leaking internals.
func respondServiceError(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrComponentUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrNoActiveCart),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrConflict):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Forbidden("Invalid credentials")
	default:
		logger.WithCtx(c.Context()).Error("controller: unexpected error", "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}

// uintParam parses a numeric path parameter. Sends a 400 and returns false
// on garbage.
func uintParam(c *ctx.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Error(http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// uintQuery parses an optional numeric query parameter; absent or invalid
// values yield 0.
func uintQuery(c *ctx.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func intQuery(c *ctx.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return n
}
