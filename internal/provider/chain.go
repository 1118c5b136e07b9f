package provider

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Attempt pairs a provider client with the credential configured for one
// feature. A feature may use a different credential per provider than
// another feature.
type Attempt struct {
	Client     Client
	Credential string
}

// Chain tries its providers in fixed order and returns the first success.
// This is a fallback chain, not a retry loop: each provider is attempted at
// most once per Generate call, and ordering is never adaptive.
type Chain struct {
	attempts []Attempt
}

// NewChain builds a Chain over the given attempts in priority order.
func NewChain(attempts ...Attempt) *Chain {
	return &Chain{attempts: attempts}
}

// Generate walks the chain. Providers without a credential fail immediately
// with no_credential and the chain moves on. When no provider succeeds
// (including when none is credentialed) the aggregate failure collects every
// per-provider reason in Detail.
func (c *Chain) Generate(ctx context.Context, prompt string) Result {
	reasons := make([]string, 0, len(c.attempts))
	for _, a := range c.attempts {
		res := a.Client.Generate(ctx, prompt, a.Credential)
		if res.OK {
			return res
		}
		log.Warn().
			Str("provider", res.Provider).
			Str("reason", res.Reason).
			Str("detail", res.Detail).
			Msg("provider attempt failed")
		reasons = append(reasons, res.Provider+":"+res.Reason)
	}
	return Result{
		Reason: ReasonAllFailed,
		Detail: strings.Join(reasons, ", "),
	}
}
