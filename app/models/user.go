package models

import "gorm.io/gorm"

// Roles known to the storefront. Signup input is normalised against this
// list; anything else falls back to RoleCustomer.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
	RoleCashier  = "Cashier"
)

// User is the primary user model.
type User struct {
	gorm.Model
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role      string `gorm:"size:50;default:Customer" json:"role"`
}

// NormalizeRole maps arbitrary role input to one of the known roles.
// Unknown or empty input becomes RoleCustomer.
func NormalizeRole(input string) string {
	switch titleCase(input) {
	case RoleAdmin:
		return RoleAdmin
	case RoleCashier:
		return RoleCashier
	default:
		return RoleCustomer
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i := range b {
		c := b[i]
		if i == 0 {
			if c >= 'a' && c <= 'z' {
				b[i] = c - 32
			}
		} else if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
