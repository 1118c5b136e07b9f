// Package quota implements the per-day, per-identity, per-feature usage
// budget. The Tracker owns policy (limits, day bucketing, check-and-charge
// atomicity) and delegates raw counter storage to a Store so the backing
// table can be swapped (in-memory map for tests and single-node setups,
// SQLite for persistence across restarts).
package quota

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

// pruneEvery controls how many charges pass between opportunistic prunes of
// stale (non-current-day) counters.
const pruneEvery = 512

// Store persists usage counters. Implementations must make Increment atomic
// per (day, identity, feature) row; the Tracker serializes the surrounding
// check-and-increment itself.
type Store interface {
	// Counts returns the current counters for (day, identity), zero-valued
	// when no counter exists yet.
	Counts(ctx context.Context, day, identity string) (domain.UsageCounts, error)
	// Increment adds one use to the named counter, creating it when absent,
	// and returns the new count.
	Increment(ctx context.Context, day, identity string, feature domain.Feature) (int, error)
	// Prune drops counters for days other than keepDay. Best effort.
	Prune(ctx context.Context, keepDay string) error
}

// Limits holds the configured daily budget per feature.
type Limits struct {
	SEO   int
	Learn int
}

// For returns the limit for a single feature.
func (l Limits) For(f domain.Feature) int {
	if f == domain.FeatureLearn {
		return l.Learn
	}
	return l.SEO
}

// Tracker enforces the daily budget. Safe for concurrent use.
type Tracker struct {
	store  Store
	limits Limits

	// mu makes the read-then-increment in TryCharge a critical section, so
	// two concurrent requests cannot both consume the last unit of budget.
	mu      sync.Mutex
	charges uint64

	nowFn func() time.Time // test seam
}

// NewTracker constructs a Tracker over store with the given limits.
// Negative limits are coerced to zero (feature fully disabled).
func NewTracker(store Store, limits Limits) *Tracker {
	if limits.SEO < 0 {
		limits.SEO = 0
	}
	if limits.Learn < 0 {
		limits.Learn = 0
	}
	return &Tracker{store: store, limits: limits, nowFn: time.Now}
}

// Today returns the current UTC day key ("YYYY-MM-DD"). A request straddling
// midnight lands in whichever bucket is current at the moment of the check.
func (t *Tracker) Today() string {
	return t.nowFn().UTC().Format("2006-01-02")
}

// Remaining returns the budget still available for (day, identity), clamped
// at zero per feature. Reading never creates or mutates counters.
func (t *Tracker) Remaining(ctx context.Context, day, identity string) (domain.Remaining, error) {
	tr := otel.Tracer("quota/Tracker")
	ctx, span := tr.Start(ctx, "Remaining",
		trace.WithAttributes(attribute.String("quota.day", day)),
	)
	defer span.End()

	counts, err := t.store.Counts(ctx, day, identity)
	if err != nil {
		return domain.Remaining{}, err
	}
	return domain.Remaining{
		SEO:   clamp(t.limits.SEO - counts.SEO),
		Learn: clamp(t.limits.Learn - counts.Learn),
	}, nil
}

// TryCharge atomically checks the remaining budget for feature and, when at
// least one unit is available, charges it. It reports whether the charge was
// taken. Callers charge at attempt time (a cache miss heading for the
// providers) so that failed provider attempts still consume budget while
// cache hits stay free.
func (t *Tracker) TryCharge(ctx context.Context, day, identity string, feature domain.Feature) (bool, error) {
	tr := otel.Tracer("quota/Tracker")
	ctx, span := tr.Start(ctx, "TryCharge",
		trace.WithAttributes(
			attribute.String("quota.day", day),
			attribute.String("quota.feature", string(feature)),
		),
	)
	defer span.End()

	t.mu.Lock()
	defer t.mu.Unlock()

	counts, err := t.store.Counts(ctx, day, identity)
	if err != nil {
		return false, err
	}
	used := counts.SEO
	if feature == domain.FeatureLearn {
		used = counts.Learn
	}
	if used >= t.limits.For(feature) {
		return false, nil
	}
	if _, err := t.store.Increment(ctx, day, identity, feature); err != nil {
		return false, err
	}

	// Reclaim stale day buckets every so often; correctness does not depend
	// on it, memory boundedness does.
	t.charges++
	if t.charges >= pruneEvery {
		t.charges = 0
		_ = t.store.Prune(ctx, day)
	}
	return true, nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
