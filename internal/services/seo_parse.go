package services

import (
	"encoding/json"
	"regexp"
	"strings"
)

// SEOData is the structured payload of a successful SEO generation.
type SEOData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// fenceRE strips markdown code fences providers love to wrap JSON in.
var fenceRE = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Field probes for the best-effort path. Values are taken from JSON-ish
// key/value pairs even when the surrounding object fails to parse.
var (
	titleFieldRE = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	descFieldRE  = regexp.MustCompile(`"description"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	tagsFieldRE  = regexp.MustCompile(`(?s)"tags"\s*:\s*\[(.*?)\]`)
	quotedRE     = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// ParseSEO interprets provider text as SEO metadata. It tries a strict JSON
// decode first, then best-effort field extraction, and as a last resort
// synthesizes a payload from the raw text. A request is never failed solely
// because the provider ignored the output contract.
func ParseSEO(text string) SEOData {
	body := strings.TrimSpace(text)
	if m := fenceRE.FindStringSubmatch(body); m != nil {
		body = strings.TrimSpace(m[1])
	}

	// Strict path: the object may be embedded in commentary.
	if start, end := strings.Index(body, "{"), strings.LastIndex(body, "}"); start >= 0 && end > start {
		var data SEOData
		if err := json.Unmarshal([]byte(body[start:end+1]), &data); err == nil && strings.TrimSpace(data.Title) != "" {
			data.Title = strings.TrimSpace(data.Title)
			data.Description = strings.TrimSpace(data.Description)
			data.Tags = cleanTags(data.Tags)
			return data
		}
	}

	// Best-effort path: probe for the fields individually.
	data := SEOData{}
	if m := titleFieldRE.FindStringSubmatch(body); m != nil {
		data.Title = unescape(m[1])
	}
	if m := descFieldRE.FindStringSubmatch(body); m != nil {
		data.Description = unescape(m[1])
	}
	if m := tagsFieldRE.FindStringSubmatch(body); m != nil {
		for _, q := range quotedRE.FindAllStringSubmatch(m[1], -1) {
			data.Tags = append(data.Tags, unescape(q[1]))
		}
	}
	data.Tags = cleanTags(data.Tags)
	if data.Title != "" {
		return data
	}

	// Last resort: first line becomes the title, the rest the description.
	lines := strings.SplitN(body, "\n", 2)
	data.Title = clip(strings.TrimSpace(lines[0]), 100)
	if len(lines) > 1 {
		data.Description = strings.TrimSpace(lines[1])
	}
	return data
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func unescape(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
