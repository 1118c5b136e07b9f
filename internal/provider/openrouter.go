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
	defaultOpenRouterModel = "deepseek/deepseek-chat"
	openRouterEndpoint     = "https://openrouter.ai/api/v1/chat/completions"
)

// OpenRouter calls the OpenRouter chat-completions API (OpenAI wire shape)
// with a bearer credential.
type OpenRouter struct {
	http  *http.Client
	model string
	// baseURL overrides the production endpoint in tests.
	baseURL string
}

// NewOpenRouter constructs an OpenRouter client using the shared HTTP
// client. An empty model selects the default.
func NewOpenRouter(httpClient *http.Client, model string) *OpenRouter {
	if model == "" {
		model = defaultOpenRouterModel
	}
	return &OpenRouter{http: httpClient, model: model}
}

// Name implements Client.
func (o *OpenRouter) Name() string { return NameOpenRouter }

type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openRouterResponse covers the chat-completions success shape. The legacy
// completions "text" field is kept as a fallback.
type openRouterResponse struct {
	Choices []struct {
		Message openRouterMessage `json:"message"`
		Text    string            `json:"text"`
	} `json:"choices"`
}

// Generate implements Client.
func (o *OpenRouter) Generate(ctx context.Context, prompt, credential string) Result {
	if strings.TrimSpace(credential) == "" {
		return failure(NameOpenRouter, ReasonNoCredential, "no api key configured")
	}

	body, err := json.Marshal(openRouterRequest{
		Model:    o.model,
		Messages: []openRouterMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return failure(NameOpenRouter, ReasonTransport, "encode request: "+err.Error())
	}

	url := o.baseURL
	if url == "" {
		url = openRouterEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure(NameOpenRouter, ReasonTransport, "build request: "+err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := o.http.Do(req)
	if err != nil {
		return failure(NameOpenRouter, ReasonTransport, err.Error())
	}
	defer resp.Body.Close()

	raw, err := readBody(resp.Body)
	if err != nil {
		return failure(NameOpenRouter, ReasonTransport, "read response: "+err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(NameOpenRouter, ReasonBadStatus,
			fmt.Sprintf("status %d: %s", resp.StatusCode, snippet(raw)))
	}

	text := extractOpenRouterText(raw)
	if strings.TrimSpace(text) == "" {
		return failure(NameOpenRouter, ReasonEmptyBody, "no text in response")
	}
	return success(NameOpenRouter, text)
}

// extractOpenRouterText pulls generated text from a chat-completions body:
// choices[0].message.content, then the legacy choices[0].text, then the raw
// body as a last resort.
func extractOpenRouterText(raw []byte) string {
	var resp openRouterResponse
	if err := json.Unmarshal(raw, &resp); err == nil && len(resp.Choices) > 0 {
		if s := strings.TrimSpace(resp.Choices[0].Message.Content); s != "" {
			return s
		}
		if s := strings.TrimSpace(resp.Choices[0].Text); s != "" {
			return s
		}
	}
	return strings.TrimSpace(string(raw))
}
