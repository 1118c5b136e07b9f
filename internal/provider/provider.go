// Package provider implements the gateway to the upstream text-generation
// services and the fallback chain across them.
//
// Every upstream interaction is normalized into a Result value: network
// errors, non-success statuses, missing credentials, and unparseable bodies
// all become tagged failures rather than Go errors. Hard faults are reserved
// for programming errors. Each provider variant owns its response extractor,
// keeping the chain provider-agnostic.
package provider

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure reason tags carried by Result.Reason.
const (
	ReasonNoCredential = "no_credential"
	ReasonTransport    = "transport_error"
	ReasonBadStatus    = "bad_status"
	ReasonEmptyBody    = "empty_response"
	ReasonAllFailed    = "all_providers_failed"
)

// Provider names as reported to callers and metrics.
const (
	NameGemini     = "gemini"
	NameOpenRouter = "openrouter"
)

var providerReqs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "provider_requests_total",
		Help: "Upstream provider attempts by provider and outcome.",
	},
	[]string{"provider", "outcome"},
)

func init() {
	prometheus.MustRegister(providerReqs)
}

// Result is the uniform outcome of one provider attempt (or of a whole
// chain). It is transient and never persisted.
type Result struct {
	OK       bool
	Provider string
	Text     string
	// Reason tags the failure class when OK is false.
	Reason string
	// Detail carries the provider status or diagnostic for logs. It is never
	// surfaced to callers verbatim.
	Detail string
}

// failure builds a failed Result for a provider.
func failure(provider, reason, detail string) Result {
	providerReqs.WithLabelValues(provider, reason).Inc()
	return Result{Provider: provider, Reason: reason, Detail: detail}
}

// success builds a successful Result for a provider.
func success(provider, text string) Result {
	providerReqs.WithLabelValues(provider, "success").Inc()
	return Result{OK: true, Provider: provider, Text: text}
}

// Client is a single upstream text-generation provider.
//
// Generate must never panic on unexpected upstream behavior and must honor
// ctx for cancellation; transport-level timeouts are bounded by the
// http.Client the implementation was built with.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt, credential string) Result
}

// NewHTTPClient returns the http.Client shared by provider implementations,
// with the configured per-call timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// readBody drains at most maxBody bytes of a response body.
const maxBody = 1 << 20

func readBody(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxBody))
}
