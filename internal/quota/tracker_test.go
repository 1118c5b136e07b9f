package quota

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

func newTestTracker(seo, learn int) (*Tracker, *MemStore) {
	st := NewMemStore()
	return NewTracker(st, Limits{SEO: seo, Learn: learn}), st
}

func TestToday_UTCFormat(t *testing.T) {
	tr, _ := newTestTracker(1, 1)
	tr.nowFn = func() time.Time {
		return time.Date(2025, 3, 9, 23, 59, 0, 0, time.FixedZone("UTC+5", 5*3600))
	}
	// 23:59 at UTC+5 is 18:59 UTC, still March 9.
	if got := tr.Today(); got != "2025-03-09" {
		t.Fatalf("Today() = %q; want 2025-03-09", got)
	}
}

func TestRemaining_DefaultsToFullBudget(t *testing.T) {
	tr, _ := newTestTracker(5, 10)
	rem, err := tr.Remaining(context.Background(), "2025-03-09", "id1")
	if err != nil {
		t.Fatal(err)
	}
	if rem.SEO != 5 || rem.Learn != 10 {
		t.Fatalf("fresh identity remaining = %+v; want {5 10}", rem)
	}
}

func TestTryCharge_MonotonicNeverNegative(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(3, 1)
	day, id := "2025-03-09", "id1"

	prev := 3
	for i := 0; i < 5; i++ {
		charged, err := tr.TryCharge(ctx, day, id, domain.FeatureSEO)
		if err != nil {
			t.Fatal(err)
		}
		rem, err := tr.Remaining(ctx, day, id)
		if err != nil {
			t.Fatal(err)
		}
		if rem.SEO > prev {
			t.Fatalf("remaining increased: %d -> %d", prev, rem.SEO)
		}
		if rem.SEO < 0 {
			t.Fatalf("remaining went negative: %d", rem.SEO)
		}
		if i < 3 && !charged {
			t.Fatalf("charge %d should succeed", i+1)
		}
		if i >= 3 && charged {
			t.Fatalf("charge %d should be rejected", i+1)
		}
		prev = rem.SEO
	}

	// The other feature keeps its own budget.
	rem, _ := tr.Remaining(ctx, day, id)
	if rem.Learn != 1 {
		t.Fatalf("learn budget touched by seo charges: %+v", rem)
	}
}

func TestTryCharge_ExhaustedDoesNotIncrement(t *testing.T) {
	ctx := context.Background()
	tr, st := newTestTracker(1, 1)
	day, id := "2025-03-09", "id1"

	if ok, _ := tr.TryCharge(ctx, day, id, domain.FeatureLearn); !ok {
		t.Fatal("first charge should succeed")
	}
	for i := 0; i < 3; i++ {
		if ok, _ := tr.TryCharge(ctx, day, id, domain.FeatureLearn); ok {
			t.Fatal("charge beyond limit should be rejected")
		}
	}
	counts, _ := st.Counts(ctx, day, id)
	if counts.Learn != 1 {
		t.Fatalf("rejected charges must not increment: count = %d", counts.Learn)
	}
}

func TestTryCharge_DayBoundaryResetsBudget(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(1, 1)
	id := "id1"

	if ok, _ := tr.TryCharge(ctx, "2025-03-09", id, domain.FeatureSEO); !ok {
		t.Fatal("day one charge should succeed")
	}
	if ok, _ := tr.TryCharge(ctx, "2025-03-09", id, domain.FeatureSEO); ok {
		t.Fatal("day one budget should be exhausted")
	}
	if ok, _ := tr.TryCharge(ctx, "2025-03-10", id, domain.FeatureSEO); !ok {
		t.Fatal("new day should start with a fresh budget")
	}
}

func TestTryCharge_ConcurrentNeverOversells(t *testing.T) {
	ctx := context.Background()
	const limit = 10
	tr, st := newTestTracker(limit, limit)
	day, id := "2025-03-09", "id1"

	var wg sync.WaitGroup
	granted := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := tr.TryCharge(ctx, day, id, domain.FeatureSEO)
			if err != nil {
				t.Error(err)
				return
			}
			granted <- ok
		}()
	}
	wg.Wait()
	close(granted)

	n := 0
	for ok := range granted {
		if ok {
			n++
		}
	}
	if n != limit {
		t.Fatalf("granted %d charges; want exactly %d", n, limit)
	}
	counts, _ := st.Counts(ctx, day, id)
	if counts.SEO != limit {
		t.Fatalf("stored count = %d; want %d", counts.SEO, limit)
	}
}

func TestMemStore_PruneKeepsCurrentDay(t *testing.T) {
	ctx := context.Background()
	st := NewMemStore()
	_, _ = st.Increment(ctx, "2025-03-08", "id1", domain.FeatureSEO)
	_, _ = st.Increment(ctx, "2025-03-09", "id1", domain.FeatureSEO)

	if err := st.Prune(ctx, "2025-03-09"); err != nil {
		t.Fatal(err)
	}
	old, _ := st.Counts(ctx, "2025-03-08", "id1")
	if old.SEO != 0 {
		t.Fatalf("old day should be pruned, got %+v", old)
	}
	cur, _ := st.Counts(ctx, "2025-03-09", "id1")
	if cur.SEO != 1 {
		t.Fatalf("current day should survive prune, got %+v", cur)
	}
}

func TestNewTracker_CoercesNegativeLimits(t *testing.T) {
	tr := NewTracker(NewMemStore(), Limits{SEO: -1, Learn: -5})
	if tr.limits.SEO != 0 || tr.limits.Learn != 0 {
		t.Fatalf("negative limits should coerce to zero: %+v", tr.limits)
	}
	ok, err := tr.TryCharge(context.Background(), "2025-03-09", "id1", domain.FeatureSEO)
	if err != nil || ok {
		t.Fatalf("zero limit should reject all charges (ok=%v err=%v)", ok, err)
	}
}
