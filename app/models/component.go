package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Component is a single PC part in the catalogue.
//
// Specifications is an open JSON document whose shape depends on the
// category (socket and TDP for a CPU, wattage for a PSU, ...). The typed
// accessors in specs.go project the fields the compatibility wizard needs.
//
// Embedding is the vector produced by the embedding API for semantic search
// in the chat assistant. It is refreshed by VectorizeComponentJob and never
// exposed over the API.
type Component struct {
	gorm.Model
	Name           string                 `gorm:"size:255;not null;index" json:"name"`
	Brand          string                 `gorm:"size:100" json:"brand"`
	Price          decimal.Decimal        `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock          int                    `gorm:"not null;default:0" json:"stock"`
	IsActive       bool                   `gorm:"not null;default:true" json:"isActive"`
	ImageURL       string                 `gorm:"size:512" json:"imageUrl"`
	CategoryID     uint                   `gorm:"not null;index" json:"categoryId"`
	Category       *Category              `json:"category,omitempty"`
	Specifications map[string]interface{} `gorm:"serializer:json;type:text" json:"specifications"`
	Embedding      []float32              `gorm:"serializer:json;type:text" json:"-"`
}
