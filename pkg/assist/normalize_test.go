package assist

import (
	"strings"
	"testing"
)

func TestNormalizePlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"simple sentence", "The crime page is in the sidebar."},
		{"mentions card without call", "I would show you a navigation card here."},
		{"code block without payload", "Try this:\n```\nnpm start\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got.Text != tt.raw {
				t.Errorf("Text = %q, want input unchanged %q", got.Text, tt.raw)
			}
			if got.Card != nil || got.Guide != nil {
				t.Errorf("Expected no structured payload, got card=%v guide=%v", got.Card, got.Guide)
			}
		})
	}
}

func TestNormalizeCardVariants(t *testing.T) {
	payload := `{"title": "Search", "description": "Find stats by state", "link": "/search"}`

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "fenced call",
			raw:  "Here you go!\n```\nnavigation_card(" + payload + ")\n```\nAnything else?",
		},
		{
			name: "fenced call with language tag",
			raw:  "Here you go!\n```js\nnavigation_card(" + payload + ")\n```\nAnything else?",
		},
		{
			name: "bare call",
			raw:  "Here you go!\nnavigation_card(" + payload + ")\nAnything else?",
		},
		{
			name: "fenced json",
			raw:  "Here you go!\n```json\n" + payload + "\n```\nAnything else?",
		},
		{
			name: "single quoted payload",
			raw:  "Here you go!\nnavigation_card({'title': 'Search', 'description': 'Find stats by state', 'link': '/search'})\nAnything else?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)

			if got.Card == nil {
				t.Fatalf("Expected card, got none (text=%q)", got.Text)
			}
			if got.Guide != nil {
				t.Error("Card result must not also carry a guide")
			}
			if got.Card.Title != "Search" || got.Card.Link != "/search" {
				t.Errorf("Unexpected card: %+v", got.Card)
			}
			if strings.Contains(got.Text, "navigation_card") || strings.Contains(got.Text, "/search") {
				t.Errorf("Matched span not stripped: %q", got.Text)
			}
			if !strings.Contains(got.Text, "Here you go!") || !strings.Contains(got.Text, "Anything else?") {
				t.Errorf("Surrounding text lost: %q", got.Text)
			}
			if got.Text != strings.TrimSpace(got.Text) {
				t.Errorf("Result text not trimmed: %q", got.Text)
			}
		})
	}
}

func TestNormalizeIncompleteCardFallsThrough(t *testing.T) {
	// Missing link: not a card. Falls through to plain text.
	raw := `navigation_card({"title": "Search", "description": "Find stats"})`
	got := Normalize(raw)

	if got.Card != nil {
		t.Errorf("Incomplete payload must not yield a card: %+v", got.Card)
	}
	if got.Text != raw {
		t.Errorf("Expected text unchanged, got %q", got.Text)
	}
}

func TestNormalizeMalformedCardFallsThroughToGuide(t *testing.T) {
	raw := "```\nnavigation_card({not json at all)\n```\n" +
		`step_by_step_guide({"task": "Change the state filter", "steps": [{"step_number": 1, "instruction": "Open the filter panel", "location": "top-right"}]})`

	got := Normalize(raw)

	if got.Card != nil {
		t.Errorf("Malformed card payload must be swallowed, got %+v", got.Card)
	}
	if got.Guide == nil {
		t.Fatalf("Expected guide after card fall-through (text=%q)", got.Text)
	}
	if got.Guide.Task != "Change the state filter" {
		t.Errorf("Unexpected guide task: %q", got.Guide.Task)
	}
}

func TestNormalizeGuide(t *testing.T) {
	raw := "Sure, follow these steps.\n```\nstep_by_step_guide({" +
		`"task": "Compare two cities", ` +
		`"steps": [` +
		`{"step_number": 1, "instruction": "Open the search page", "location": "top-left"}, ` +
		`{"step_number": 2, "instruction": "Pick the second city", "element_description": "city dropdown", "location": "top-right"}` +
		`], "destination_page": "/compare"})` + "\n```"

	got := Normalize(raw)

	if got.Guide == nil {
		t.Fatalf("Expected guide (text=%q)", got.Text)
	}
	if got.Card != nil {
		t.Error("Guide result must not also carry a card")
	}
	if len(got.Guide.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(got.Guide.Steps))
	}
	if got.Guide.Steps[1].ElementDescription != "city dropdown" {
		t.Errorf("Unexpected step: %+v", got.Guide.Steps[1])
	}
	if got.Guide.DestinationPage != "/compare" {
		t.Errorf("Expected destination /compare, got %q", got.Guide.DestinationPage)
	}
	if got.Text != "Sure, follow these steps." {
		t.Errorf("Expected stripped text, got %q", got.Text)
	}
}

func TestNormalizeGuideEmptyStepsRejected(t *testing.T) {
	raw := `step_by_step_guide({"task": "Do nothing", "steps": []})`
	got := Normalize(raw)

	if got.Guide != nil {
		t.Errorf("Empty steps must not yield a guide: %+v", got.Guide)
	}
	if got.Text != raw {
		t.Errorf("Expected text unchanged, got %q", got.Text)
	}
}

func TestNormalizeCardPriorityOverGuide(t *testing.T) {
	raw := `navigation_card({"title": "Search", "description": "d", "link": "/search"})` +
		"\n" +
		`step_by_step_guide({"task": "t", "steps": [{"step_number": 1, "instruction": "i", "location": "l"}]})`

	got := Normalize(raw)

	if got.Card == nil {
		t.Fatal("Expected card to win when both payloads are present")
	}
	if got.Guide != nil {
		t.Error("Guide must be nil when a card was extracted")
	}
	// The guide call is left behind as display text.
	if !strings.Contains(got.Text, "step_by_step_guide") {
		t.Errorf("Remainder should keep the unextracted span: %q", got.Text)
	}
}

func TestNormalizeFirstMatchOnly(t *testing.T) {
	first := `navigation_card({"title": "Crime", "description": "d1", "link": "/crime"})`
	second := `navigation_card({"title": "Housing", "description": "d2", "link": "/housing"})`
	got := Normalize(first + "\nand\n" + second)

	if got.Card == nil || got.Card.Link != "/crime" {
		t.Fatalf("Expected first card extracted, got %+v", got.Card)
	}
	if !strings.Contains(got.Text, "/housing") {
		t.Errorf("Second payload should remain in text: %q", got.Text)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := "Take a look.\n```\nnavigation_card({\"title\": \"Employment\", \"description\": \"Jobs data\", \"link\": \"/employment\"})\n```"

	first := Normalize(raw)
	if first.Card == nil {
		t.Fatal("Expected card on first pass")
	}

	second := Normalize(first.Text)
	if second.Card != nil || second.Guide != nil {
		t.Errorf("Second pass re-extracted a payload from %q", first.Text)
	}
	if second.Text != first.Text {
		t.Errorf("Second pass changed text: %q -> %q", first.Text, second.Text)
	}
}
