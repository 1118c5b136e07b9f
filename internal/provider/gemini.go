package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"
	geminiEndpointFmt  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
)

// Gemini calls Google's generateContent API. The credential is passed via
// the x-goog-api-key header, not the URL, so it never lands in access logs.
type Gemini struct {
	http  *http.Client
	model string
	// baseURL overrides the production endpoint in tests.
	baseURL string
}

// NewGemini constructs a Gemini client using the shared HTTP client.
// An empty model selects the default.
func NewGemini(httpClient *http.Client, model string) *Gemini {
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{http: httpClient, model: model}
}

// Name implements Client.
func (g *Gemini) Name() string { return NameGemini }

// geminiRequest is the generateContent payload.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse covers the success shape we rely on. Anything else goes
// through the tolerant extraction path.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate implements Client.
func (g *Gemini) Generate(ctx context.Context, prompt, credential string) Result {
	if strings.TrimSpace(credential) == "" {
		return failure(NameGemini, ReasonNoCredential, "no api key configured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return failure(NameGemini, ReasonTransport, "encode request: "+err.Error())
	}

	url := g.baseURL
	if url == "" {
		url = fmt.Sprintf(geminiEndpointFmt, g.model)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure(NameGemini, ReasonTransport, "build request: "+err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", credential)

	resp, err := g.http.Do(req)
	if err != nil {
		return failure(NameGemini, ReasonTransport, err.Error())
	}
	defer resp.Body.Close()

	raw, err := readBody(resp.Body)
	if err != nil {
		return failure(NameGemini, ReasonTransport, "read response: "+err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(NameGemini, ReasonBadStatus,
			fmt.Sprintf("status %d: %s", resp.StatusCode, snippet(raw)))
	}

	text := extractGeminiText(raw)
	if strings.TrimSpace(text) == "" {
		return failure(NameGemini, ReasonEmptyBody, "no text in response")
	}
	return success(NameGemini, text)
}

// extractGeminiText pulls the generated text out of a generateContent
// response body. It tries the documented candidates/content/parts shape
// first, then generic fallback fields, and finally returns the raw body so
// a shape change upstream degrades output quality instead of failing the
// request.
func extractGeminiText(raw []byte) string {
	var resp geminiResponse
	if err := json.Unmarshal(raw, &resp); err == nil && len(resp.Candidates) > 0 {
		var b strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			return s
		}
	}

	// Fallback fields seen across API revisions.
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err == nil {
		for _, key := range []string{"text", "output", "content"} {
			if s, ok := loose[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	return strings.TrimSpace(string(raw))
}

// snippet truncates a diagnostic body for logging.
func snippet(raw []byte) string {
	const max = 300
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}
