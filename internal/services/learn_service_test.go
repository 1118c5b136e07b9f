package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ymy1064-stack/App-backend/internal/cache"
	"github.com/ymy1064-stack/App-backend/internal/domain"
	"github.com/ymy1064-stack/App-backend/internal/provider"
)

func newLearnService(q *fakeQuota, chain *fakeChain) (*LearnService, *cache.MemStore) {
	st := cache.NewMemStore()
	return &LearnService{Quota: q, Cache: cache.New(st, 0), Chain: chain}, st
}

func TestLearnAsk_Success(t *testing.T) {
	q := &fakeQuota{day: "2025-03-09", remaining: domain.Remaining{Learn: 10}, chargeOK: true}
	chain := &fakeChain{result: provider.Result{OK: true, Provider: "openrouter", Text: "  A goroutine is a lightweight thread.  "}}
	svc, _ := newLearnService(q, chain)

	res, err := svc.Ask(context.Background(), "id1", LearnRequest{Question: "what is a goroutine?"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || res.Provider != "openrouter" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Answer != "A goroutine is a lightweight thread." {
		t.Fatalf("answer should be trimmed: %q", res.Answer)
	}
	if len(q.charges) != 1 || q.charges[0] != domain.FeatureLearn {
		t.Fatalf("want one learn charge, got %v", q.charges)
	}
}

func TestLearnAsk_EmptyQuestionRejected(t *testing.T) {
	q := &fakeQuota{day: "2025-03-09", remaining: domain.Remaining{Learn: 10}, chargeOK: true}
	svc, _ := newLearnService(q, &fakeChain{})
	if _, err := svc.Ask(context.Background(), "id1", LearnRequest{Question: "  "}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("want ErrEmptyInput, got %v", err)
	}
}

func TestLearnAsk_RepeatQuestionHitsCache(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuota{day: "2025-03-09", remaining: domain.Remaining{Learn: 10}, chargeOK: true}
	chain := &fakeChain{result: provider.Result{OK: true, Provider: "gemini", Text: "answer text"}}
	svc, _ := newLearnService(q, chain)
	req := LearnRequest{Question: "what is a channel?", Section: "concurrency"}

	first, err := svc.Ask(ctx, "id1", req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Ask(ctx, "id1", req)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Answer != first.Answer {
		t.Fatalf("repeat should be a cache hit with identical answer: %+v", second)
	}
	if chain.calls != 1 || len(q.charges) != 1 {
		t.Fatalf("cache hit must cost nothing: calls=%d charges=%v", chain.calls, q.charges)
	}
}

func TestLearnAsk_SectionChangesFingerprint(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuota{day: "2025-03-09", remaining: domain.Remaining{Learn: 10}, chargeOK: true}
	chain := &fakeChain{result: provider.Result{OK: true, Provider: "gemini", Text: "a"}}
	svc, _ := newLearnService(q, chain)

	if _, err := svc.Ask(ctx, "id1", LearnRequest{Question: "q", Section: "s1"}); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Ask(ctx, "id1", LearnRequest{Question: "q", Section: "s2"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Fatal("different section must not share a cache entry")
	}
	if chain.calls != 2 {
		t.Fatalf("provider calls = %d; want 2", chain.calls)
	}
}

func TestLearnAsk_DegradedChargesOnce(t *testing.T) {
	q := &fakeQuota{day: "2025-03-09", remaining: domain.Remaining{Learn: 10}, chargeOK: true}
	chain := &fakeChain{result: provider.Result{Reason: provider.ReasonAllFailed, Detail: "gemini:no_credential, openrouter:no_credential"}}
	svc, st := newLearnService(q, chain)

	_, err := svc.Ask(context.Background(), "id1", LearnRequest{Question: "q"})
	if !errors.Is(err, ErrServiceDegraded) {
		t.Fatalf("want ErrServiceDegraded, got %v", err)
	}
	if len(q.charges) != 1 {
		t.Fatalf("degraded attempt must charge exactly once, got %v", q.charges)
	}
	if st.Len() != 0 {
		t.Fatal("degraded attempts must not be cached")
	}
}

func TestLearnFallback_NonEmpty(t *testing.T) {
	if LearnFallback() == "" {
		t.Fatal("fallback answer must be non-empty")
	}
}
