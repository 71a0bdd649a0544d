package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/auth"
	"github.com/buildmaster/storefront/pkg/database"
	"gorm.io/gorm"
)

// AuthService handles signup, login and profile lookup.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService() *AuthService {
	return &AuthService{db: database.DB}
}

// SignupInput is the registration payload.
type SignupInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role"`
}

// Signup registers a new user and returns it with a fresh token. The role
// input is normalised against the known roles and defaults to Customer, so
// arbitrary strings cannot grant privileges.
func (s *AuthService) Signup(input SignupInput) (models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.User{}, "", err
	}
	if count > 0 {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  hash,
		Role:      models.NormalizeRole(input.Role),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a token.
// An unknown email and a wrong password are reported distinctly.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, "", fmt.Errorf("%w: no account for this email", ErrNotFound)
	}
	if err != nil {
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(userID uint) (models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	return user, err
}
