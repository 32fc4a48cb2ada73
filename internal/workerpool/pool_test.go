package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitAndDrain(t *testing.T) {
	p := New(2, 10)
	var count atomic.Int32

	for i := 0; i < 5; i++ {
		ok := p.Submit(func() {
			count.Add(1)
		})
		if !ok {
			t.Fatalf("Submit %d failed", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if got := count.Load(); got != 5 {
		t.Fatalf("count = %d, want 5", got)
	}
}

func TestSubmitAfterShutdownReturnsFalse(t *testing.T) {
	p := New(1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if p.Submit(func() {}) {
		t.Fatal("Submit after Shutdown should return false")
	}
}

func TestQueueFullReturnsFalse(t *testing.T) {
	p := New(1, 1)
	// Block the worker
	blocker := make(chan struct{})
	p.Submit(func() { <-blocker })

	// Fill the queue
	time.Sleep(10 * time.Millisecond) // let worker pick up first task
	p.Submit(func() {})               // fills the queue (size 1)

	// Queue is full, so this is rejected
	if p.Submit(func() {}) {
		t.Fatal("Submit should return false when queue is full")
	}

	close(blocker)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)
}

func TestDrainWithoutStopAcceptingAutoStops(t *testing.T) {
	p := New(1, 10)
	p.Submit(func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Drain without StopAccepting still stops the pool
	p.Drain(ctx)

	if p.Submit(func() {}) {
		t.Fatal("Submit should return false after auto-stopped Drain")
	}
}

func TestContextCancelledAfterDrain(t *testing.T) {
	p := New(1, 10)
	p.Submit(func() {})

	poolCtx := p.Context()
	if poolCtx.Err() != nil {
		t.Fatal("pool context should not be cancelled before Drain")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if poolCtx.Err() == nil {
		t.Fatal("pool context should be cancelled after Drain")
	}
}

func TestDrainRespectsContextDeadline(t *testing.T) {
	p := New(1, 10)
	blocker := make(chan struct{})
	p.Submit(func() { <-blocker })

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	p.Shutdown(ctx)
	elapsed := time.Since(start)

	if elapsed > 500*time.Millisecond {
		t.Fatalf("Drain should have timed out in ~100ms, took %v", elapsed)
	}

	close(blocker) // cleanup
}

func TestSingleWorkerDrainDoesNotDeadlock(t *testing.T) {
	p := New(1, 10)
	var count atomic.Int32

	for i := 0; i < 5; i++ {
		p.Submit(func() {
			time.Sleep(1 * time.Millisecond)
			count.Add(1)
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if got := count.Load(); got != 5 {
		t.Fatalf("single-worker drain: count = %d, want 5", got)
	}
}

func TestPanicRecovery(t *testing.T) {
	p := New(1, 10)
	var count atomic.Int32

	// Submit a panicking task
	p.Submit(func() {
		panic("test panic")
	})
	// Submit a normal task after
	p.Submit(func() {
		count.Add(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if got := count.Load(); got != 1 {
		t.Fatalf("task after panic: count = %d, want 1", got)
	}
}

func TestSubmitLatestSkipsSuperseded(t *testing.T) {
	p := New(1, 10)
	blocker := make(chan struct{})
	p.Submit(func() { <-blocker })

	var mu sync.Mutex
	var ran []int
	for i := 0; i < 4; i++ {
		i := i
		if !p.SubmitLatest("rebuild", func(stale func() bool) {
			mu.Lock()
			ran = append(ran, i)
			mu.Unlock()
		}) {
			t.Fatalf("SubmitLatest %d failed", i)
		}
	}
	close(blocker)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if len(ran) != 1 || ran[0] != 3 {
		t.Fatalf("ran = %v, want [3]", ran)
	}
}

func TestSubmitLatestKeysAreIndependent(t *testing.T) {
	p := New(1, 10)
	blocker := make(chan struct{})
	p.Submit(func() { <-blocker })

	var count atomic.Int32
	p.SubmitLatest("a", func(func() bool) { count.Add(1) })
	p.SubmitLatest("b", func(func() bool) { count.Add(1) })
	close(blocker)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if got := count.Load(); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
}

func TestSubmitLatestStaleWhileRunning(t *testing.T) {
	p := New(2, 10)
	started := make(chan struct{})
	release := make(chan struct{})
	result := make(chan bool, 1)

	p.SubmitLatest("k", func(stale func() bool) {
		close(started)
		<-release
		result <- stale()
	})
	<-started
	p.SubmitLatest("k", func(func() bool) {})
	close(release)

	if !<-result {
		t.Fatal("running task should observe it was superseded")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)
}

func TestSubmitLatestBurstUsesOneSlot(t *testing.T) {
	p := New(1, 1)
	blocker := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() {
		close(started)
		<-blocker
	})
	<-started

	var mu sync.Mutex
	var ran []int
	for i := 0; i < 10; i++ {
		i := i
		if !p.SubmitLatest("sequence", func(func() bool) {
			mu.Lock()
			ran = append(ran, i)
			mu.Unlock()
		}) {
			t.Fatalf("SubmitLatest %d rejected", i)
		}
	}
	close(blocker)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)

	if len(ran) != 1 || ran[0] != 9 {
		t.Fatalf("ran = %v, want [9]", ran)
	}
}

func TestSubmitLatestRejectedKeepsRunningTaskCurrent(t *testing.T) {
	p := New(1, 1)
	started := make(chan struct{})
	release := make(chan struct{})
	result := make(chan bool, 1)

	p.SubmitLatest("k", func(stale func() bool) {
		close(started)
		<-release
		result <- stale()
	})
	<-started
	p.Submit(func() {}) // fills the queue

	if p.SubmitLatest("k", func(func() bool) {}) {
		t.Fatal("SubmitLatest should be rejected when the queue is full")
	}
	close(release)

	if <-result {
		t.Fatal("a rejected submission marked the running task stale")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Shutdown(ctx)
}
