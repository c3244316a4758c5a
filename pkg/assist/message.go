// Package assist implements the chat assistant pipeline: the per-session
// conversation state machine and the normalization of completion-service
// replies into structured navigation payloads.
package assist

import (
	"dashchat/pkg/api"
	"dashchat/pkg/intent"
)

// Message is one conversation turn. Messages are append-only and never
// mutated after being added to the history.
type Message struct {
	Text   string
	IsUser bool
	Card   *api.NavigationCard
	Guide  *api.StepGuide
}

// Starter is a one-click conversation opener. Selecting it sets the
// intent and submits in a single step, so the submit path never reads a
// stale intent.
type Starter struct {
	Text   string
	Intent intent.Intent
}

// Starters returns the conversation openers shown in the chat panel.
func Starters() []Starter {
	return []Starter{
		{Text: "the search page?", Intent: intent.Locate},
		{Text: "crime statistics for my state?", Intent: intent.Locate},
		{Text: "the housing price charts?", Intent: intent.Locate},
		{Text: "change the selected state?", Intent: intent.Instruct},
		{Text: "compare two cities?", Intent: intent.Instruct},
		{Text: "filter by offense type?", Intent: intent.Instruct},
	}
}
