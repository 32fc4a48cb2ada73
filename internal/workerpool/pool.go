package workerpool

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/iconify-tray/iconify/internal/logging"
)

var log = logging.L("workerpool")

// Task is a unit of work submitted to the pool.
type Task func()

// KeyedTask is submitted with SubmitLatest. stale reports whether a newer
// task has since been submitted under the same key; tasks check it before
// publishing their result.
type KeyedTask func(stale func() bool)

// Pool is a bounded goroutine pool with a fixed-size task queue.
type Pool struct {
	maxWorkers int
	queue      chan Task
	wg         sync.WaitGroup
	accepting  atomic.Bool
	stopOnce   sync.Once
	closeOnce  sync.Once
	stopChan   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	genMu   sync.Mutex
	gens    map[string]uint64
	pending map[string]KeyedTask
}

// New creates a pool with maxWorkers goroutines and a task queue of queueSize.
func New(maxWorkers, queueSize int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		maxWorkers: maxWorkers,
		queue:      make(chan Task, queueSize),
		stopChan:   make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		gens:       make(map[string]uint64),
		pending:    make(map[string]KeyedTask),
	}
	p.accepting.Store(true)

	for i := 0; i < maxWorkers; i++ {
		go p.worker()
	}

	log.Debug("worker pool started", "workers", maxWorkers, "queueSize", queueSize)
	return p
}

// Context is cancelled once the pool has drained or the drain deadline has
// passed. Long tasks watch it to bail out early during shutdown.
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Submit enqueues a task. Returns false if the pool is stopped or the queue is full.
// wg.Add is called here (before enqueue) to prevent a race with Drain.
func (p *Pool) Submit(task Task) bool {
	if !p.accepting.Load() {
		return false
	}

	p.wg.Add(1)
	select {
	case p.queue <- task:
		return true
	default:
		p.wg.Done() // undo the Add since task was not enqueued
		log.Warn("worker pool queue full, task rejected")
		return false
	}
}

// SubmitLatest enqueues task under key. At most one task per key waits in
// the queue: submitting again while one is pending replaces it, so a burst
// of submissions runs only the last one and takes a single queue slot. A
// task already running sees its stale func flip to true once a newer task
// is accepted. Returns false if the pool is stopped or the queue is full,
// in which case earlier tasks for key are left untouched.
func (p *Pool) SubmitLatest(key string, task KeyedTask) bool {
	p.genMu.Lock()
	defer p.genMu.Unlock()

	if _, queued := p.pending[key]; queued {
		p.pending[key] = task
		p.gens[key]++
		log.Debug("pending task replaced", "key", key)
		return true
	}

	p.pending[key] = task
	if !p.Submit(p.runLatest(key)) {
		delete(p.pending, key)
		return false
	}
	p.gens[key]++
	return true
}

// runLatest picks up whatever task is pending for key when a worker gets
// to it.
func (p *Pool) runLatest(key string) Task {
	return func() {
		p.genMu.Lock()
		task, ok := p.pending[key]
		delete(p.pending, key)
		gen := p.gens[key]
		p.genMu.Unlock()

		if !ok {
			return
		}
		task(func() bool { return p.generation(key) != gen })
	}
}

func (p *Pool) generation(key string) uint64 {
	p.genMu.Lock()
	defer p.genMu.Unlock()
	return p.gens[key]
}

// StopAccepting prevents new tasks from being submitted.
func (p *Pool) StopAccepting() {
	p.accepting.Store(false)
}

// Drain waits for all in-flight and queued tasks to complete, respecting the
// context deadline. It stops accepting new submissions first.
// After Drain returns, the queue channel is closed so worker goroutines exit.
func (p *Pool) Drain(ctx context.Context) {
	p.StopAccepting()
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Debug("worker pool drained")
	case <-ctx.Done():
		log.Warn("worker pool drain timed out")
	}

	p.cancel()

	// Close queue so worker goroutines exit and are not leaked
	p.closeOnce.Do(func() {
		close(p.queue)
	})
}

// Shutdown stops accepting work and drains the queue.
func (p *Pool) Shutdown(ctx context.Context) {
	p.StopAccepting()
	p.Drain(ctx)
}

func (p *Pool) worker() {
	for {
		select {
		case task, ok := <-p.queue:
			if !ok {
				return
			}
			p.runTask(task)
		case <-p.stopChan:
			// Drain remaining queued tasks
			for {
				select {
				case task, ok := <-p.queue:
					if !ok {
						return
					}
					p.runTask(task)
				default:
					return
				}
			}
		}
	}
}

// runTask executes a single task with panic recovery. wg.Done is called here
// to match the wg.Add in Submit.
func (p *Pool) runTask(task Task) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error("task panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	task()
}
