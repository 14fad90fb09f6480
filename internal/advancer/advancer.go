package advancer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/myshopee/backend/internal/orders"
)

// OrderStore is the slice of the orders store a pass needs: a cross-user scan
// partitioned by current status, and a conditional per-order transition.
type OrderStore interface {
	ListByStatus(ctx context.Context, status string) ([]orders.Order, error)
	AdvanceStatus(ctx context.Context, userID, orderID, from, to string, now time.Time) error
}

// MetricsSink receives per-pass counters. Implementations must not block the
// pass on failure; emission errors are their problem to log.
type MetricsSink interface {
	RecordPass(ctx context.Context, from, to string, advanced, failed int)
}

// Config carries the advancer's dependencies.
type Config struct {
	Store   OrderStore
	Log     *zap.Logger
	Metrics MetricsSink // optional

	// Concurrency caps simultaneous per-order updates within a pass.
	Concurrency int
}

// Result summarizes one pass over a single (from, to) transition.
type Result struct {
	From     string
	To       string
	Scanned  int
	Eligible int
	Advanced int
	Skipped  int // conditional write lost: another pass got there first
	Failed   int
}

// Advancer promotes eligible orders through the lifecycle, one status level
// per pass. It assumes it is the only writer of order status post-creation.
type Advancer struct {
	store       OrderStore
	log         *zap.Logger
	metrics     MetricsSink
	concurrency int
	nowFunc     func() time.Time

	cycleMu sync.Mutex
}

// New builds an Advancer from cfg. A zero or negative Concurrency falls back
// to serial updates.
func New(cfg Config) *Advancer {
	c := cfg.Concurrency
	if c <= 0 {
		c = 1
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Advancer{
		store:       cfg.Store,
		log:         log,
		metrics:     cfg.Metrics,
		concurrency: c,
		nowFunc:     time.Now,
	}
}

// Advance runs one pass: every order currently in from whose from-timestamp
// is at least threshold in the past (inclusive) is transitioned to to. Orders
// with a missing or unparseable timestamp are not eligible and are skipped
// silently. A failed update is logged with the order key and does not stop
// the rest of the batch; only a failed scan aborts the pass.
func (a *Advancer) Advance(ctx context.Context, from, to string, threshold time.Duration) (Result, error) {
	res := Result{From: from, To: to}
	now := a.nowFunc()

	candidates, err := a.store.ListByStatus(ctx, from)
	if err != nil {
		return res, fmt.Errorf("scan orders in %q: %w", from, err)
	}
	res.Scanned = len(candidates)

	var eligible []orders.Order
	for _, o := range candidates {
		raw, ok := o.StatusTimestamps[from]
		if !ok {
			continue
		}
		entered, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		if now.Sub(entered) >= threshold {
			eligible = append(eligible, o)
		}
	}
	res.Eligible = len(eligible)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, a.concurrency)
	)
	for _, o := range eligible {
		wg.Add(1)
		sem <- struct{}{}
		go func(o orders.Order) {
			defer wg.Done()
			defer func() { <-sem }()

			err := a.store.AdvanceStatus(ctx, o.UserID, o.OrderID, from, to, now)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				res.Advanced++
			case errors.Is(err, orders.ErrStatusMismatch):
				res.Skipped++
			default:
				res.Failed++
				a.log.Error("order update failed",
					zap.String("user_id", o.UserID),
					zap.String("order_id", o.OrderID),
					zap.String("from", from),
					zap.String("to", to),
					zap.Error(err))
			}
		}(o)
	}
	wg.Wait()

	a.log.Info("pass complete",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("scanned", res.Scanned),
		zap.Int("eligible", res.Eligible),
		zap.Int("advanced", res.Advanced),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))

	if a.metrics != nil {
		a.metrics.RecordPass(ctx, from, to, res.Advanced, res.Failed)
	}
	return res, nil
}

// Transition is one (from, to, threshold) rule of the lifecycle.
type Transition struct {
	From  string
	To    string
	After time.Duration
}

// Transitions builds the full lifecycle rule set from the three thresholds.
func Transitions(placedToProcessing, processingToShipped, shippedToDelivered time.Duration) []Transition {
	return []Transition{
		{From: orders.StatusPlaced, To: orders.StatusProcessing, After: placedToProcessing},
		{From: orders.StatusProcessing, To: orders.StatusShipped, After: processingToShipped},
		{From: orders.StatusShipped, To: orders.StatusDelivered, After: shippedToDelivered},
	}
}

// RunCycle runs the transitions in lifecycle order. A cycle never overlaps
// another from the same Advancer: if the previous one is still running the
// new invocation is dropped, since its passes would only produce redundant
// conditional writes. Returns nil when the cycle was skipped.
func (a *Advancer) RunCycle(ctx context.Context, transitions []Transition) []Result {
	if !a.cycleMu.TryLock() {
		a.log.Warn("previous cycle still running, skipping")
		return nil
	}
	defer a.cycleMu.Unlock()

	results := make([]Result, 0, len(transitions))
	for _, tr := range transitions {
		res, err := a.Advance(ctx, tr.From, tr.To, tr.After)
		if err != nil {
			// scan failure: this pass retries on the next cycle, nothing persisted
			a.log.Error("pass aborted",
				zap.String("from", tr.From),
				zap.String("to", tr.To),
				zap.Error(err))
			continue
		}
		results = append(results, res)
	}
	return results
}
