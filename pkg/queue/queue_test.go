package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/buildmaster/storefront/pkg/queue"
)

// Handled counts live at package level because the worker rebuilds jobs
// from their JSON payload; instance fields would not survive the trip.
var (
	pings    atomic.Int32
	failures atomic.Int32
)

type pingJob struct {
	ID uint `json:"id"`
}

func (j *pingJob) Handle() error {
	pings.Add(1)
	return nil
}

type alwaysFailJob struct{}

func (j *alwaysFailJob) Handle() error {
	failures.Add(1)
	return errors.New("always fails")
}

func init() {
	queue.Register("*queue_test.pingJob", func() queue.Job { return &pingJob{} })
	queue.Register("*queue_test.alwaysFailJob", func() queue.Job { return &alwaysFailJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatchRoundTripsThroughRegistry(t *testing.T) {
	before := pings.Load()
	if err := queue.Dispatch(&pingJob{ID: 1}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, func() bool { return pings.Load() > before })
}

func TestFailingJobLandsInFailedJobs(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())
	if err := queue.Dispatch(&alwaysFailJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, func() bool { return len(queue.FailedJobs()) > before })

	failed := queue.FailedJobs()
	last := failed[len(failed)-1]
	if last.Err == nil || last.Attempts != 1 {
		t.Errorf("failed job = %+v", last)
	}
}

func TestConcurrentDispatch(t *testing.T) {
	before := pings.Load()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			queue.Dispatch(&pingJob{ID: id}) //nolint:errcheck
		}(uint(i))
	}
	wg.Wait()

	waitFor(t, func() bool { return pings.Load() >= before+20 })
}
