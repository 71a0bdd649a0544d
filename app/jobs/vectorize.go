// Package jobs defines the storefront's background jobs.
package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/app/services"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/queue"
	"gorm.io/gorm"
)

// VectorizeComponentJob computes and stores the embedding vector for one
// component. It is dispatched whenever a component is created or updated
// and in bulk by the vectorize CLI command.
type VectorizeComponentJob struct {
	ComponentID uint `json:"component_id"`
}

func (j *VectorizeComponentJob) Handle() error {
	var component models.Component
	err := database.DB.Preload("Category").First(&component, j.ComponentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Deleted before the job ran; nothing to do.
		return nil
	}
	if err != nil {
		return err
	}

	vector, err := services.EmbedText(embeddingText(component))
	if err != nil {
		return fmt.Errorf("embed component %d: %w", component.ID, err)
	}

	component.Embedding = vector
	component.Category = nil
	return database.DB.Save(&component).Error
}

// embeddingText flattens a component into the text that gets embedded:
// name, brand, category and the specification key/value pairs.
func embeddingText(c models.Component) string {
	parts := []string{c.Name, c.Brand}
	if c.Category != nil {
		parts = append(parts, c.Category.Name)
	}
	for key, value := range c.Specifications {
		parts = append(parts, fmt.Sprintf("%s: %v", key, value))
	}
	return strings.Join(parts, ". ")
}

// Register makes all job types known to the queue worker. Call once at
// boot, before StartWorkers.
func Register() {
	queue.Register("*jobs.VectorizeComponentJob", func() queue.Job {
		return &VectorizeComponentJob{}
	})
}
