package analytics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"ymcli/internal/errors"
)

// Pool runs CPU-heavy computations (Monte Carlo significance testing)
// on a bounded set of workers with last-request-wins semantics: a new
// submission for a slot cancels a still-running older one instead of
// queueing behind it.
type Pool struct {
	sem     chan struct{}
	mu      sync.Mutex
	active  map[string]*slotJob
	logger  *slog.Logger
	metrics *Metrics
}

type slotJob struct {
	id     string
	cancel context.CancelFunc
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int, metrics *Metrics, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		sem:     make(chan struct{}, workers),
		active:  make(map[string]*slotJob),
		logger:  logger.With(slog.String("component", "mc_pool")),
		metrics: metrics,
	}
}

// Run executes fn under the slot, cancelling any older computation
// still holding it. When this computation is itself superseded by a
// newer one, Run returns errors.ErrSuperseded; caller cancellation is
// reported as the context's own error.
func (p *Pool) Run(ctx context.Context, slot string, fn func(context.Context) error) error {
	jobID := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	job := &slotJob{id: jobID, cancel: cancel}

	p.mu.Lock()
	if prev := p.active[slot]; prev != nil {
		p.logger.Debug("superseding active computation",
			slog.String("slot", slot),
			slog.String("superseded_job", prev.id),
			slog.String("job", jobID),
		)
		prev.cancel()
		if p.metrics != nil {
			p.metrics.Supersessions.Inc()
		}
	}
	p.active[slot] = job
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if p.active[slot] == job {
			delete(p.active, slot)
		}
		p.mu.Unlock()
	}()

	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-runCtx.Done():
		return p.doneError(ctx, runCtx)
	}

	if err := fn(runCtx); err != nil {
		if runCtx.Err() != nil {
			return p.doneError(ctx, runCtx)
		}
		return err
	}
	return nil
}

// doneError distinguishes caller cancellation from supersession.
func (p *Pool) doneError(callerCtx, runCtx context.Context) error {
	if err := callerCtx.Err(); err != nil {
		return err
	}
	if runCtx.Err() != nil {
		return errors.ErrSuperseded
	}
	return nil
}
