package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/bilgisen/haberci/internal/logger"
)

// Runner starts background runs of a Processor, one at a time, and keeps
// the last report
type Runner struct {
	proc    *Processor
	base    context.Context
	timeout time.Duration
	history History

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewRunner ties background runs to base; cancelling base stops them
func NewRunner(base context.Context, proc *Processor, timeout time.Duration) *Runner {
	return &Runner{
		proc:    proc,
		base:    base,
		timeout: timeout,
	}
}

// Start launches a run in the background. It returns false when a run is
// already in progress.
func (r *Runner) Start(limit int) bool {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return false
	}
	r.running = true
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(r.base, r.timeout)
		defer cancel()

		report, err := r.proc.Run(ctx, limit)
		if err != nil {
			logger.With("ingest").Warn().
				Err(err).
				Dur("timeout", r.timeout).
				Msg("Background run ended early")
		}
		r.history.Store(report)
	}()

	return true
}

func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Last returns the report of the most recent finished run
func (r *Runner) Last() *Report {
	return r.history.Last()
}

// Wait blocks until the current background run, if any, has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}
