package models

import "gorm.io/gorm"

// Category groups components: CPUs, motherboards, RAM, GPUs, storage,
// power supplies and cases. Names are the merchant-facing labels
// ("Processeurs", "Cartes Graphiques", ...), so matching elsewhere is done
// with LIKE rather than equality.
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Category) TableName() string { return "component_categories" }
