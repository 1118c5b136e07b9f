package provider

import (
	"context"
	"strings"
	"testing"
)

// fakeClient scripts one provider's behavior and records calls.
type fakeClient struct {
	name   string
	result Result
	calls  int
	gotCre string
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) Generate(_ context.Context, _, credential string) Result {
	f.calls++
	f.gotCre = credential
	if strings.TrimSpace(credential) == "" {
		return Result{Provider: f.name, Reason: ReasonNoCredential}
	}
	return f.result
}

func TestChain_FirstSuccessShortCircuits(t *testing.T) {
	a := &fakeClient{name: "a", result: Result{OK: true, Provider: "a", Text: "from a"}}
	b := &fakeClient{name: "b", result: Result{OK: true, Provider: "b", Text: "from b"}}
	chain := NewChain(Attempt{a, "key-a"}, Attempt{b, "key-b"})

	res := chain.Generate(context.Background(), "p")
	if !res.OK || res.Provider != "a" || res.Text != "from a" {
		t.Fatalf("want a's result, got %+v", res)
	}
	if b.calls != 0 {
		t.Fatal("second provider must not be called after a success")
	}
}

func TestChain_FallsBackToSecondProvider(t *testing.T) {
	a := &fakeClient{name: "a", result: Result{Provider: "a", Reason: ReasonBadStatus}}
	b := &fakeClient{name: "b", result: Result{OK: true, Provider: "b", Text: "from b"}}
	chain := NewChain(Attempt{a, "key-a"}, Attempt{b, "key-b"})

	res := chain.Generate(context.Background(), "p")
	if !res.OK || res.Provider != "b" {
		t.Fatalf("want b's result, got %+v", res)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("each provider tried at most once: a=%d b=%d", a.calls, b.calls)
	}
}

func TestChain_UncredentialedProviderSkippedWithoutNetwork(t *testing.T) {
	a := &fakeClient{name: "a"}
	b := &fakeClient{name: "b", result: Result{OK: true, Provider: "b", Text: "from b"}}
	chain := NewChain(Attempt{a, ""}, Attempt{b, "key-b"})

	res := chain.Generate(context.Background(), "p")
	if !res.OK || res.Provider != "b" {
		t.Fatalf("want b's result, got %+v", res)
	}
	if a.gotCre != "" {
		t.Fatal("no credential should be forwarded for a")
	}
}

func TestChain_AggregateFailureCollectsReasons(t *testing.T) {
	a := &fakeClient{name: "a", result: Result{Provider: "a", Reason: ReasonTransport}}
	b := &fakeClient{name: "b", result: Result{Provider: "b", Reason: ReasonBadStatus}}
	chain := NewChain(Attempt{a, "key-a"}, Attempt{b, "key-b"})

	res := chain.Generate(context.Background(), "p")
	if res.OK || res.Reason != ReasonAllFailed {
		t.Fatalf("want aggregate failure, got %+v", res)
	}
	if !strings.Contains(res.Detail, "a:"+ReasonTransport) || !strings.Contains(res.Detail, "b:"+ReasonBadStatus) {
		t.Fatalf("detail should collect per-provider reasons: %q", res.Detail)
	}
}

func TestChain_NoCredentialsAnywhereStillAggregates(t *testing.T) {
	a := &fakeClient{name: "a"}
	b := &fakeClient{name: "b"}
	chain := NewChain(Attempt{a, ""}, Attempt{b, " "})

	res := chain.Generate(context.Background(), "p")
	if res.OK || res.Reason != ReasonAllFailed {
		t.Fatalf("want aggregate failure, got %+v", res)
	}
	if !strings.Contains(res.Detail, ReasonNoCredential) {
		t.Fatalf("detail should mention missing credentials: %q", res.Detail)
	}
}
