package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ymy1064-stack/App-backend/internal/cache"
	"github.com/ymy1064-stack/App-backend/internal/domain"
	"github.com/ymy1064-stack/App-backend/internal/prompt"
	"github.com/ymy1064-stack/App-backend/internal/provider"
)

var quotaRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quota_rejections_total",
		Help: "Requests rejected because the daily budget was exhausted.",
	},
	[]string{"feature"},
)

func init() {
	prometheus.MustRegister(quotaRejections)
}

// Quota is the budget surface the services consume.
type Quota interface {
	Today() string
	Remaining(ctx context.Context, day, identity string) (domain.Remaining, error)
	TryCharge(ctx context.Context, day, identity string, feature domain.Feature) (bool, error)
}

// Generator is the provider fallback chain surface the services consume.
type Generator interface {
	Generate(ctx context.Context, prompt string) provider.Result
}

// SEORequest carries the raw request fields for SEO generation.
type SEORequest struct {
	Topic    string
	Script   string
	Language string
	Shorts   bool
}

// SEOResult is a completed SEO generation.
type SEOResult struct {
	Cached   bool
	Provider string
	Data     SEOData
}

// SEOService runs the quota/cache/fallback pipeline for SEO generation.
type SEOService struct {
	Quota Quota
	Cache *cache.Cache
	Chain Generator
}

// Generate produces SEO metadata for the request on behalf of identity.
//
// Sequence: remaining-budget check (free), cache lookup (free), provider
// chain behind an atomic quota charge. The charge sticks even when every
// provider fails, so an attacker cannot buy unlimited retries by forcing
// upstream errors.
func (s *SEOService) Generate(ctx context.Context, identity string, req SEORequest) (*SEOResult, error) {
	tr := otel.Tracer("services/SEOService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(attribute.Bool("seo.shorts", req.Shorts)),
	)
	defer span.End()

	topic := strings.TrimSpace(req.Topic)
	script := strings.TrimSpace(req.Script)
	if topic == "" && script == "" {
		return nil, ErrEmptyInput
	}
	langCode, langName := prompt.ResolveLanguage(req.Language)

	day := s.Quota.Today()
	rem, err := s.Quota.Remaining(ctx, day, identity)
	if err != nil {
		return nil, err
	}
	if rem.For(domain.FeatureSEO) <= 0 {
		quotaRejections.WithLabelValues(string(domain.FeatureSEO)).Inc()
		return nil, ErrQuotaExceeded
	}

	fp := cache.Fingerprint(domain.FeatureSEO, map[string]string{
		"topic":    topic,
		"script":   script,
		"language": langCode,
		"shorts":   strconv.FormatBool(req.Shorts),
	})
	if entry, hit, err := s.Cache.Get(ctx, domain.FeatureSEO, fp); err == nil && hit {
		var data SEOData
		if jerr := json.Unmarshal([]byte(entry.Payload), &data); jerr == nil {
			return &SEOResult{Cached: true, Provider: entry.Provider, Data: data}, nil
		}
		// Undecodable payload reads as a miss and gets overwritten below.
	} else if err != nil {
		log.Warn().Err(err).Msg("seo cache lookup failed")
	}

	charged, err := s.Quota.TryCharge(ctx, day, identity, domain.FeatureSEO)
	if err != nil {
		return nil, err
	}
	if !charged {
		// Lost the race for the last unit of budget.
		quotaRejections.WithLabelValues(string(domain.FeatureSEO)).Inc()
		return nil, ErrQuotaExceeded
	}

	res := s.Chain.Generate(ctx, prompt.SEO(prompt.SEOInput{
		Topic:    topic,
		Script:   script,
		Language: langName,
		Shorts:   req.Shorts,
	}))
	if !res.OK {
		log.Error().Str("detail", res.Detail).Msg("seo generation degraded")
		return nil, ErrServiceDegraded
	}

	data := ParseSEO(res.Text)
	if payload, jerr := json.Marshal(data); jerr == nil {
		if cerr := s.Cache.Put(ctx, domain.FeatureSEO, fp, res.Provider, string(payload)); cerr != nil {
			log.Warn().Err(cerr).Msg("seo cache store failed")
		}
	}
	return &SEOResult{Provider: res.Provider, Data: data}, nil
}

// SEOFallback is the static safe payload served when every provider fails.
// It is intentionally generic; the topic is echoed when available so the
// caller still receives usable content.
func SEOFallback(topic string) SEOData {
	title := strings.TrimSpace(topic)
	if title == "" {
		title = "New video"
	}
	return SEOData{
		Title:       clip(title, 70),
		Description: "Watch the full video for details. Like and subscribe for more content like this.",
		Tags:        []string{"video", "youtube", "tutorial", "guide", "howto"},
	}
}
