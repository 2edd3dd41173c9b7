// Package workerpool bounds the number of concurrent background goroutines
// the service may spawn.
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWorkerPoolFull returned when the task queue is full
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed returned when the pool has been shut down
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	// ErrTaskCancelled returned when a task's context was cancelled before it ran
	ErrTaskCancelled = errors.New("task was cancelled")
)

// Config worker pool configuration.
type Config struct {
	// MaxWorkers maximum concurrent workers, default 100
	MaxWorkers int
	// QueueSize task queue size, default 1000
	QueueSize int
	// WarningPercent load warning threshold, default 0.8
	WarningPercent float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     100,
		QueueSize:      1000,
		WarningPercent: 0.8,
	}
}

type taskWrapper struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool manages goroutine lifecycles.
type Pool struct {
	config Config
	logger *zap.Logger

	taskCh   chan taskWrapper
	workerWg sync.WaitGroup

	activeCount atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New creates a worker pool. A nil cfg means defaults, a nil logger means a
// nop logger.
func New(cfg *Config, logger *zap.Logger) *Pool {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 100
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.WarningPercent <= 0 || cfg.WarningPercent > 1 {
		cfg.WarningPercent = 0.8
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		config: *cfg,
		logger: logger,
		taskCh: make(chan taskWrapper, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", cfg.MaxWorkers),
		zap.Int("queueSize", cfg.QueueSize))

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskCh:
			if !ok {
				return
			}
			p.executeTask(task)
		}
	}
}

func (p *Pool) executeTask(task taskWrapper) {
	p.activeCount.Add(1)
	defer p.activeCount.Add(-1)

	p.checkWarningThreshold()

	var err error
	select {
	case <-task.ctx.Done():
		err = ErrTaskCancelled
	default:
		err = task.fn(task.ctx)
	}

	if task.done != nil {
		select {
		case task.done <- err:
		default:
		}
	}
}

func (p *Pool) checkWarningThreshold() {
	active := p.activeCount.Load()
	threshold := int64(float64(p.config.MaxWorkers) * p.config.WarningPercent)

	if active >= threshold {
		p.logger.Warn("worker pool approaching capacity",
			zap.Int64("activeCount", active),
			zap.Int("maxWorkers", p.config.MaxWorkers))
	}
}

// Submit runs a task on the pool and waits for its result.
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrWorkerPoolClosed
	}
	p.mu.RUnlock()

	done := make(chan error, 1)
	task := taskWrapper{ctx: ctx, fn: fn, done: done}

	select {
	case p.taskCh <- task:
	default:
		return ErrWorkerPoolFull
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrWorkerPoolClosed
	}
}

// SubmitAsync submits a task without waiting for its result.
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrWorkerPoolClosed
	}
	p.mu.RUnlock()

	task := taskWrapper{ctx: ctx, fn: fn}

	select {
	case p.taskCh <- task:
		return nil
	default:
		return ErrWorkerPoolFull
	}
}

// ActiveCount returns the number of currently running tasks.
func (p *Pool) ActiveCount() int64 {
	return p.activeCount.Load()
}

// QueuedCount returns the number of tasks waiting in the queue.
func (p *Pool) QueuedCount() int {
	return len(p.taskCh)
}

// IsClosed reports whether the pool has been shut down.
func (p *Pool) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Shutdown stops accepting tasks and waits for running ones to finish, up to
// the context deadline.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
	}

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}
