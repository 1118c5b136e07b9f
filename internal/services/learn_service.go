package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ymy1064-stack/App-backend/internal/cache"
	"github.com/ymy1064-stack/App-backend/internal/domain"
	"github.com/ymy1064-stack/App-backend/internal/prompt"
)

// LearnRequest carries the raw request fields for a learning question.
type LearnRequest struct {
	Question string
	Language string
	Section  string
}

// LearnResult is a completed learning answer.
type LearnResult struct {
	Cached   bool
	Provider string
	Answer   string
}

// learnPayload is the cached JSON shape for learning answers.
type learnPayload struct {
	Answer string `json:"answer"`
}

// LearnService runs the quota/cache/fallback pipeline for learning Q&A.
type LearnService struct {
	Quota Quota
	Cache *cache.Cache
	Chain Generator
}

// Ask answers a learning question on behalf of identity. The pipeline
// mirrors SEOService.Generate; only the prompt, the cache namespace and the
// payload shape differ.
func (s *LearnService) Ask(ctx context.Context, identity string, req LearnRequest) (*LearnResult, error) {
	tr := otel.Tracer("services/LearnService")
	ctx, span := tr.Start(ctx, "Ask",
		trace.WithAttributes(attribute.String("learn.section", req.Section)),
	)
	defer span.End()

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyInput
	}
	section := strings.TrimSpace(req.Section)
	langCode, langName := prompt.ResolveLanguage(req.Language)

	day := s.Quota.Today()
	rem, err := s.Quota.Remaining(ctx, day, identity)
	if err != nil {
		return nil, err
	}
	if rem.For(domain.FeatureLearn) <= 0 {
		quotaRejections.WithLabelValues(string(domain.FeatureLearn)).Inc()
		return nil, ErrQuotaExceeded
	}

	fp := cache.Fingerprint(domain.FeatureLearn, map[string]string{
		"question": question,
		"language": langCode,
		"section":  section,
	})
	if entry, hit, err := s.Cache.Get(ctx, domain.FeatureLearn, fp); err == nil && hit {
		var payload learnPayload
		if jerr := json.Unmarshal([]byte(entry.Payload), &payload); jerr == nil && payload.Answer != "" {
			return &LearnResult{Cached: true, Provider: entry.Provider, Answer: payload.Answer}, nil
		}
	} else if err != nil {
		log.Warn().Err(err).Msg("learn cache lookup failed")
	}

	charged, err := s.Quota.TryCharge(ctx, day, identity, domain.FeatureLearn)
	if err != nil {
		return nil, err
	}
	if !charged {
		quotaRejections.WithLabelValues(string(domain.FeatureLearn)).Inc()
		return nil, ErrQuotaExceeded
	}

	res := s.Chain.Generate(ctx, prompt.Learn(prompt.LearnInput{
		Question: question,
		Language: langName,
		Section:  section,
	}))
	if !res.OK {
		log.Error().Str("detail", res.Detail).Msg("learn answer degraded")
		return nil, ErrServiceDegraded
	}

	answer := strings.TrimSpace(res.Text)
	if payload, jerr := json.Marshal(learnPayload{Answer: answer}); jerr == nil {
		if cerr := s.Cache.Put(ctx, domain.FeatureLearn, fp, res.Provider, string(payload)); cerr != nil {
			log.Warn().Err(cerr).Msg("learn cache store failed")
		}
	}
	return &LearnResult{Provider: res.Provider, Answer: answer}, nil
}

// LearnFallback is the static safe answer served when every provider fails.
func LearnFallback() string {
	return "The tutor is temporarily unavailable. Please try again in a few minutes."
}
