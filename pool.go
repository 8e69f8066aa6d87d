package conduit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrPoolClosed is returned by [WorkerPool.Submit] when the pool has been
// closed.
var ErrPoolClosed = errors.New("conduit: pool is closed")

// WorkerPool is a reusable worker pool whose workers pull tasks off a
// [Channel] and arbitrate between it and a shutdown signal with
// [SelectWait]. Tasks are submitted via Submit and processed by a fixed
// number of worker goroutines.
type WorkerPool struct {
	id     uuid.UUID
	tasks  *Channel[func() error]
	done   *Channel[struct{}]
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	errMu sync.Mutex
	errs  []error

	submitted atomic.Int64
	completed atomic.Int64
	errored   atomic.Int64
	inFlight  atomic.Int64
	workers   int
}

// PoolStats provides a point-in-time snapshot of pool activity.
type PoolStats struct {
	Submitted  int64
	Completed  int64
	Errored    int64
	InFlight   int64
	QueueDepth int
	Workers    int
}

// PoolOption configures a [WorkerPool].
type PoolOption func(*poolConfig)

type poolConfig struct {
	queueSize       int
	onMetrics       func(PoolStats)
	metricsInterval time.Duration
}

// WithQueueSize sets the task queue buffer size. Default is n * 2.
func WithQueueSize(size int) PoolOption {
	return func(c *poolConfig) {
		if size < 0 {
			panic("conduit: WithQueueSize requires non-negative size")
		}
		c.queueSize = size
	}
}

// WithPoolMetrics registers a periodic pool metrics callback that fires
// every interval. Panics if interval <= 0 or fn is nil.
func WithPoolMetrics(interval time.Duration, fn func(PoolStats)) PoolOption {
	if interval <= 0 {
		panic("conduit: WithPoolMetrics requires interval > 0")
	}
	if fn == nil {
		panic("conduit: WithPoolMetrics requires non-nil callback")
	}
	return func(c *poolConfig) {
		c.onMetrics = fn
		c.metricsInterval = interval
	}
}

// NewWorkerPool creates a pool with n worker goroutines. Workers start
// immediately and process tasks until Close is called or ctx is
// cancelled, whichever comes first. Panics if n <= 0.
func NewWorkerPool(ctx context.Context, n int, opts ...PoolOption) *WorkerPool {
	if n <= 0 {
		panic("conduit: NewWorkerPool requires n > 0")
	}

	cfg := poolConfig{queueSize: n * 2}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &WorkerPool{
		id:      uuid.New(),
		tasks:   NewBufferedChannel[func() error](cfg.queueSize),
		done:    NewChannel[struct{}](),
		ctx:     ctx,
		cancel:  cancel,
		workers: n,
	}
	log.WithField("pool", p.id).WithField("workers", n).Debug("pool: started")

	go func() {
		<-ctx.Done()
		p.done.Close()
	}()

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}

	if cfg.onMetrics != nil {
		go func() {
			ticker := time.NewTicker(cfg.metricsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if p.closed.Load() {
						return
					}
					cfg.onMetrics(p.Stats())
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	return p
}

// worker arbitrates between the shutdown signal and the task queue with
// SelectWait, giving the shutdown case priority whenever both are ready.
// SelectWait only reports which case looked ready; the actual TryRecv can
// still lose a race to another worker, in which case the worker just
// selects again.
func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		idx, ok := SelectWait(0, RecvCase(p.done), RecvCase(p.tasks))
		if !ok {
			return
		}
		if idx == 0 {
			return
		}

		r := p.tasks.TryRecv()
		switch {
		case r.Ok():
			p.runTask(r.Value)
		case r.Closed():
			return
		default:
			// Lost the race for the task to a sibling worker.
		}
	}
}

func (p *WorkerPool) runTask(fn func() error) {
	p.inFlight.Add(1)
	defer func() {
		p.inFlight.Add(-1)
		p.completed.Add(1)
	}()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = newPanicError(r)
			}
		}()
		err = fn()
	}()
	if err != nil {
		p.errored.Add(1)
		p.errMu.Lock()
		p.errs = append(p.errs, err)
		p.errMu.Unlock()
		log.WithField("pool", p.id).WithError(err).Debug("pool: task failed")
	}
}

// Stats returns a point-in-time snapshot of pool activity. Safe to call
// concurrently.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Submitted:  p.submitted.Load(),
		Completed:  p.completed.Load(),
		Errored:    p.errored.Load(),
		InFlight:   p.inFlight.Load(),
		QueueDepth: p.tasks.Len(),
		Workers:    p.workers,
	}
}

// Submit submits a task to the pool. It blocks if the queue is full.
// Returns [ErrPoolClosed] if the pool has been closed, or ctx.Err() if the
// pool's own context is cancelled while blocked.
func (p *WorkerPool) Submit(fn func() error) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	sent := make(chan SendResult, 1)
	go func() { sent <- p.tasks.Send(fn) }()

	select {
	case r := <-sent:
		if r.Closed() {
			return ErrPoolClosed
		}
		p.submitted.Add(1)
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// TrySubmit attempts to submit without blocking. Returns false if the
// queue is full or the pool is closed.
func (p *WorkerPool) TrySubmit(fn func() error) bool {
	if p.closed.Load() {
		return false
	}
	if p.tasks.TrySend(fn).Ok() {
		p.submitted.Add(1)
		return true
	}
	return false
}

// Close stops accepting new tasks and waits for in-flight and queued tasks
// to finish before returning. Returns the joined errors from all failed
// tasks. Safe to call multiple times; subsequent calls return the same
// result.
func (p *WorkerPool) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		p.tasks.Close()
	}
	p.wg.Wait()
	p.cancel()

	p.errMu.Lock()
	defer p.errMu.Unlock()
	log.WithField("pool", p.id).WithField("errored", len(p.errs)).Debug("pool: closed")
	return errors.Join(p.errs...)
}
