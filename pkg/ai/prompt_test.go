package ai

import (
	"strings"
	"testing"
)

func TestBuildMessagesIncludesSnapshot(t *testing.T) {
	msgs := BuildMessages("Where is the search page?", "Page: Home (/)\nHeadings: Overview", "locate")

	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Errorf("Expected system role first, got %q", msgs[0].Role)
	}
	if !strings.Contains(msgs[0].Content, "Page: Home (/)") {
		t.Error("Expected snapshot in system prompt")
	}
	if !strings.Contains(msgs[0].Content, "navigation_card") {
		t.Error("Expected card format instruction in system prompt")
	}
	if msgs[1].Role != "user" || msgs[1].Content != "Where is the search page?" {
		t.Errorf("Expected verbatim user message, got %+v", msgs[1])
	}
}

func TestBuildMessagesIntentHints(t *testing.T) {
	locate := BuildMessages("q", "", "locate")
	if !strings.Contains(locate[0].Content, "Prefer a navigation_card") {
		t.Error("Expected locate hint")
	}

	instruct := BuildMessages("q", "", "instruct")
	if !strings.Contains(instruct[0].Content, "Prefer a step_by_step_guide") {
		t.Error("Expected instruct hint")
	}

	neutral := BuildMessages("q", "", "")
	if strings.Contains(neutral[0].Content, "Prefer a") {
		t.Error("Expected no hint without intent")
	}
}

func TestBuildMessagesEmptySnapshot(t *testing.T) {
	msgs := BuildMessages("q", "   ", "locate")
	if strings.Contains(msgs[0].Content, "Current page snapshot") {
		t.Error("Expected no snapshot section for blank snapshot")
	}
}
