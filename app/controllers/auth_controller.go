package controllers

import (
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/ctx"
	"github.com/buildmaster/storefront/pkg/middleware"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Signup handles POST /api/auth/signup.
func (a *AuthController) Signup(c *ctx.Context) {
	var input services.SignupInput
	if !c.BindJSON(&input) {
		return
	}

	user, token, err := a.service.Signup(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Created(map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *ctx.Context) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	user, token, err := a.service.Login(input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Success(map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /api/auth/me.
func (a *AuthController) Me(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := a.service.Me(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Success(user)
}

// currentUserID reads the authenticated user from the request context.
// Sends a 401 and returns false when the auth middleware did not run.
func currentUserID(c *ctx.Context) (uint, bool) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return 0, false
	}
	return userID, true
}
