// Package prompt assembles provider prompts from structured request fields.
// Everything here is a pure function of its inputs; provider selection,
// quota, and caching are the caller's concern.
package prompt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supported is the set of output languages we steer providers toward. The
// matcher maps free-form tags ("pt-BR", "EN_us", …) onto the closest entry;
// the first entry is the fallback for unparseable input.
var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Portuguese,
	language.Italian,
	language.Hindi,
	language.Arabic,
	language.Chinese,
	language.Japanese,
	language.Korean,
	language.Russian,
	language.Turkish,
	language.Vietnamese,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

// ResolveLanguage canonicalizes a free-form language field into a BCP 47
// code and an English display name ("es" → "es", "Spanish"). Blank or
// unparseable input resolves to English. The code feeds the cache
// fingerprint so "EN", "en-US" and "" all share entries; the name is what
// the provider prompt uses.
func ResolveLanguage(raw string) (code, name string) {
	tag := language.English
	if s := strings.TrimSpace(raw); s != "" {
		if parsed, err := language.Parse(s); err == nil {
			tag, _, _ = matcher.Match(parsed)
		}
	}
	base, _ := tag.Base()
	return base.String(), display.English.Languages().Name(tag)
}

// SEOInput carries the normalized fields of an SEO generation request.
type SEOInput struct {
	Topic    string
	Script   string
	Language string // English display name, from ResolveLanguage
	Shorts   bool
}

// LearnInput carries the normalized fields of a learning Q&A request.
type LearnInput struct {
	Question string
	Language string // English display name, from ResolveLanguage
	Section  string
}

// maxScriptRunes bounds how much of a video script is forwarded upstream.
const maxScriptRunes = 4000

// SEO builds the provider prompt for SEO metadata generation. The prompt
// pins the output contract to a strict JSON object so the response parser
// can try a strict decode first.
func SEO(in SEOInput) string {
	var b strings.Builder
	b.WriteString("You are an expert YouTube SEO strategist.\n")
	if in.Shorts {
		b.WriteString("The video is a Shorts video (under 60 seconds); keep the title punchy and under 50 characters.\n")
	}
	fmt.Fprintf(&b, "Write the title, description and tags in %s.\n", in.Language)
	b.WriteString("Respond with ONLY a JSON object of this exact shape, no markdown fences, no commentary:\n")
	b.WriteString(`{"title": "...", "description": "...", "tags": ["...", "..."]}` + "\n")
	b.WriteString("Rules: title under 70 characters, description 2-4 sentences with relevant keywords, 10-15 tags.\n\n")
	if topic := strings.TrimSpace(in.Topic); topic != "" {
		fmt.Fprintf(&b, "Video topic: %s\n", topic)
	}
	if script := clipRunes(strings.TrimSpace(in.Script), maxScriptRunes); script != "" {
		fmt.Fprintf(&b, "Video script:\n%s\n", script)
	}
	return b.String()
}

// Learn builds the provider prompt for a learning question.
func Learn(in LearnInput) string {
	var b strings.Builder
	b.WriteString("You are a patient tutor helping a learner.\n")
	if section := strings.TrimSpace(in.Section); section != "" {
		fmt.Fprintf(&b, "The question is about the course section %q.\n", section)
	}
	fmt.Fprintf(&b, "Answer in %s, clearly and concisely, with a short example when it helps.\n\n", in.Language)
	fmt.Fprintf(&b, "Question: %s\n", strings.TrimSpace(in.Question))
	return b.String()
}

func clipRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
