package assist

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"dashchat/pkg/api"
)

// Normalized is the result of running raw reply text through the
// normalizer. At most one of Card and Guide is non-nil; card detection
// takes unconditional priority over guide detection.
type Normalized struct {
	Text  string
	Card  *api.NavigationCard
	Guide *api.StepGuide
}

// payloadRule pairs an extraction pattern with a name for debug logs.
// Rules are evaluated in priority order; the first match that parses
// into a complete payload wins, malformed matches fall through.
type payloadRule struct {
	name    string
	pattern *regexp.Regexp
}

var cardRules = []payloadRule{
	{"card_fenced_call", regexp.MustCompile("(?s)```[a-zA-Z]*\\s*navigation_card\\s*\\(\\s*(\\{.*?\\})\\s*\\)\\s*```")},
	{"card_bare_call", regexp.MustCompile(`(?s)navigation_card\s*\(\s*(\{.*?\})\s*\)`)},
	{"card_fenced_json", regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")},
}

var guideRules = []payloadRule{
	{"guide_fenced_call", regexp.MustCompile("(?s)```[a-zA-Z]*\\s*step_by_step_guide\\s*\\(\\s*(\\{.*?\\})\\s*\\)\\s*```")},
	{"guide_bare_call", regexp.MustCompile(`(?s)step_by_step_guide\s*\(\s*(\{.*?\})\s*\)`)},
}

// Normalize detects a structured payload embedded in raw reply text,
// extracts it, and strips the matched span from the displayed text.
// Only the first matching occurrence is honored. The function never
// fails: malformed payloads are logged and swallowed, and text with no
// recognizable payload is returned unchanged.
func Normalize(raw string) Normalized {
	if raw == "" {
		return Normalized{}
	}

	for _, rule := range cardRules {
		loc := rule.pattern.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}

		var card api.NavigationCard
		if err := parseObject(raw[loc[2]:loc[3]], &card); err != nil {
			slog.Debug("normalize_parse_failed", "rule", rule.name, "error", err)
			continue
		}
		if card.Title == "" || card.Description == "" || card.Link == "" {
			slog.Debug("normalize_payload_incomplete", "rule", rule.name)
			continue
		}

		slog.Debug("normalize_card_extracted", "rule", rule.name, "link", card.Link)
		return Normalized{Text: stripSpan(raw, loc), Card: &card}
	}

	for _, rule := range guideRules {
		loc := rule.pattern.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}

		var guide api.StepGuide
		if err := parseObject(raw[loc[2]:loc[3]], &guide); err != nil {
			slog.Debug("normalize_parse_failed", "rule", rule.name, "error", err)
			continue
		}
		if guide.Task == "" || len(guide.Steps) == 0 {
			slog.Debug("normalize_payload_incomplete", "rule", rule.name)
			continue
		}

		slog.Debug("normalize_guide_extracted", "rule", rule.name, "steps", len(guide.Steps))
		return Normalized{Text: stripSpan(raw, loc), Guide: &guide}
	}

	return Normalized{Text: raw}
}

// parseObject decodes an embedded object literal as data. Models
// sometimes emit single-quoted keys and values, so a failed parse is
// retried with quote characters normalized.
func parseObject(src string, v any) error {
	if err := json.Unmarshal([]byte(src), v); err == nil {
		return nil
	}
	normalized := strings.ReplaceAll(src, "'", `"`)
	return json.Unmarshal([]byte(normalized), v)
}

// stripSpan removes the full matched span and trims the remainder.
func stripSpan(raw string, loc []int) string {
	return strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
}
