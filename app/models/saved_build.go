package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavedBuild is a named set of components a user assembled in the PC
// builder. TotalPrice is a snapshot of the component prices at save time;
// transferring a build into the cart re-prices at the current catalogue
// prices.
type SavedBuild struct {
	gorm.Model
	UserID     uint            `gorm:"not null;uniqueIndex:idx_user_build_name" json:"userId"`
	Name       string          `gorm:"size:255;not null;uniqueIndex:idx_user_build_name" json:"name"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"totalPrice"`
	Components []Component     `gorm:"many2many:saved_build_components" json:"components,omitempty"`
}

// BuildSummary is the projection returned by the build list endpoint.
type BuildSummary struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}
