package services_test

import (
	"testing"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupNormalisesEmailAndRole(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	user, token, err := svc.Signup(services.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "  Ada@Example.COM ",
		Password:  "secret123",
		Role:      "root", // unknown roles must not grant privileges
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	// The stored password must be a hash, never the plain text.
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	input := services.SignupInput{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "secret123",
	}
	_, _, err := svc.Signup(input)
	require.NoError(t, err)

	input.Email = "ADA@example.com" // case variants are the same address
	_, _, err = svc.Signup(input)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLoginDistinguishesUnknownEmailFromWrongPassword(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	_, _, err := svc.Signup(services.SignupInput{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, _, err = svc.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	user, token, err := svc.Login("Ada@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestMe(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	user, _, err := svc.Signup(services.SignupInput{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	me, err := svc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)

	_, err = svc.Me(999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestNormalizeRoleWhitelist(t *testing.T) {
	cases := map[string]string{
		"admin":    models.RoleAdmin,
		"ADMIN":    models.RoleAdmin,
		"cashier":  models.RoleCashier,
		"Customer": models.RoleCustomer,
		"":         models.RoleCustomer,
		"root":     models.RoleCustomer,
	}
	for in, want := range cases {
		assert.Equal(t, want, models.NormalizeRole(in), "input %q", in)
	}
}
