package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildmaster/storefront/app/jobs"
	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/internal/server"
	"github.com/buildmaster/storefront/pkg/database"
	"github.com/buildmaster/storefront/pkg/workerpool"
)

// vectorizeCmd recomputes embeddings for the whole catalogue in one go,
// fanning the work out over a small pool. Used after changing the
// embedding model or importing a catalogue.
var vectorizeCmd = &cobra.Command{
	Use:   "vectorize",
	Short: "Recompute embeddings for all active components",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		var ids []uint
		err := database.DB.Model(&models.Component{}).
			Where("is_active = ?", true).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}

		pool := workerpool.New(4)
		for _, id := range ids {
			id := id
			if err := pool.SubmitWait(func() {
				job := jobs.VectorizeComponentJob{ComponentID: id}
				if err := job.Handle(); err != nil {
					fmt.Printf("  failed component %d: %v\n", id, err)
				}
			}); err != nil {
				return err
			}
		}
		pool.Shutdown()

		fmt.Printf("Vectorized %d components.\n", len(ids))
		return nil
	},
}
