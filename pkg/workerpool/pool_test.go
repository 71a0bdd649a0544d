package workerpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/buildmaster/storefront/pkg/workerpool"
)

func TestPoolRunsEverySubmittedTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 200
	var done atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		if err := pool.SubmitWait(func() {
			done.Add(1)
			wg.Done()
		}); err != nil {
			t.Fatalf("SubmitWait: %v", err)
		}
	}
	wg.Wait()

	if got := done.Load(); got != n {
		t.Errorf("ran %d of %d tasks", got, n)
	}
}

func TestSubmitRejectsWhenSaturated(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	release := make(chan struct{})
	running := make(chan struct{})

	// Occupy the single worker, then fill the buffered queue
	// (capacity is twice the worker count).
	_ = pool.SubmitWait(func() {
		close(running)
		<-release
	})
	<-running
	_ = pool.Submit(func() {})
	_ = pool.Submit(func() {})

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolFull) {
		t.Errorf("saturated Submit = %v, want ErrPoolFull", err)
	}
	close(release)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("Submit after Shutdown = %v, want ErrPoolClosed", err)
	}
	if err := pool.SubmitWait(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("SubmitWait after Shutdown = %v, want ErrPoolClosed", err)
	}

	// Shutdown must be idempotent.
	pool.Shutdown()
}

func TestShutdownDrainsQueuedTasks(t *testing.T) {
	pool := workerpool.New(1)

	release := make(chan struct{})
	running := make(chan struct{})
	var done atomic.Int64

	// Park the worker, then queue two more tasks behind it.
	_ = pool.SubmitWait(func() {
		close(running)
		<-release
		done.Add(1)
	})
	<-running
	_ = pool.Submit(func() { done.Add(1) })
	_ = pool.Submit(func() { done.Add(1) })

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()
	pool.Shutdown()

	if got := done.Load(); got != 3 {
		t.Errorf("drained %d of 3 tasks", got)
	}
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	_ = pool.SubmitWait(func() {
		defer wg.Done()
		panic("vectorize blew up")
	})
	wg.Wait()

	// The lone worker must survive the panic and keep draining tasks.
	survived := make(chan struct{})
	_ = pool.SubmitWait(func() { close(survived) })

	select {
	case <-survived:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after a panicking task")
	}
}

func TestZeroSizeIsClampedToOneWorker(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Shutdown()

	ran := make(chan struct{})
	if err := pool.SubmitWait(func() { close(ran) }); err != nil {
		t.Fatalf("SubmitWait: %v", err)
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran on clamped pool")
	}
}
