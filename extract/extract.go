// Package extract pulls a structured object out of free-form provider text.
//
// Generation providers are asked for a single JSON object but frequently wrap
// it in prose, markdown fences or trailing commentary. Object applies a fast
// heuristic: take everything between the first opening brace and the last
// closing brace and parse that span as one object. It is deliberately not a
// balanced-delimiter scanner; when the surrounding prose itself contains
// literal braces, or multiple objects appear in one response, the greedy span
// may fail to parse and the bounded raw-text fallback is returned instead.
// This is known, accepted behavior - callers distinguish the two outcomes via
// the provenance flag rather than relying on extraction always succeeding.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tutorwise/agentkit/core"
)

// MaxRawLength bounds the fallback payload's raw text (in characters) so
// output size stays predictable regardless of provider verbosity.
const MaxRawLength = 500

// Object extracts one structured object from text. On a successful parse the
// object's fields are merged with fixed provenance metadata (provenance=true
// plus the provider id); the metadata wins over same-named parsed fields. On
// failure the result is a fallback payload carrying the original text,
// truncated to MaxRawLength, with provenance=false.
func Object(text, provider string) map[string]any {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')

	if first >= 0 && last > first {
		span := text[first : last+1]
		if fields := parseObject(span); fields != nil {
			fields[core.ProvenanceKey] = true
			fields[core.MetaProvider] = provider
			return fields
		}
	}

	return Fallback(text)
}

// Fallback builds the degraded payload returned when no parseable object was
// found: the original text bounded to MaxRawLength and provenance=false.
func Fallback(text string) map[string]any {
	return map[string]any{
		core.ProvenanceKey: false,
		core.RawKey:        truncate(text, MaxRawLength),
	}
}

// parseObject returns the span's fields, or nil if the span is not one valid
// JSON object. The gjson probe rejects clearly invalid spans cheaply before
// the strict parse allocates.
func parseObject(span string) map[string]any {
	if !gjson.Valid(span) {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return nil
	}
	return fields
}

// truncate bounds s to max characters without splitting a multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
