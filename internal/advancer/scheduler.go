package advancer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler drives cycles at a fixed interval until its context is canceled.
type Scheduler struct {
	advancer    *Advancer
	transitions []Transition
	interval    time.Duration
	log         *zap.Logger
}

// NewScheduler wires an Advancer to a recurring interval.
func NewScheduler(a *Advancer, transitions []Transition, interval time.Duration, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		advancer:    a,
		transitions: transitions,
		interval:    interval,
		log:         log,
	}
}

// Run executes one cycle immediately, then one per tick. It returns when ctx
// is canceled; an in-flight cycle runs to completion first.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler started", zap.Duration("interval", s.interval))
	s.advancer.RunCycle(ctx, s.transitions)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.advancer.RunCycle(ctx, s.transitions)
		}
	}
}
