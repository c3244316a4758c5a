package ai

import (
	"strings"
)

const systemPromptBase = `You are a helpful assistant embedded in a data dashboard. You help users find pages and features and explain how to accomplish tasks in the dashboard.

You receive a snapshot of the page the user is currently looking at. Use it to give answers grounded in what the user can actually see.

When the user asks WHERE something is, answer with a short sentence followed by a navigation card in exactly this form:

navigation_card({"title": "...", "description": "...", "link": "..."})

When the user asks HOW to do something, answer with a short sentence followed by a step-by-step guide in exactly this form:

step_by_step_guide({"task": "...", "steps": [{"step_number": 1, "instruction": "...", "element_description": "...", "location": "..."}], "destination_page": "..."})

Emit at most one such call per reply. Use double quotes in the JSON. If neither form fits, reply in plain text.`

// BuildMessages assembles the LLM conversation for a single dashboard
// question. The page snapshot and intent ride in the system prompt so
// the user message stays verbatim.
func BuildMessages(userMessage, pageDOM, intent string) []Message {
	var sb strings.Builder
	sb.WriteString(systemPromptBase)

	if snapshot := strings.TrimSpace(pageDOM); snapshot != "" {
		sb.WriteString("\n\nCurrent page snapshot:\n")
		sb.WriteString(snapshot)
	}

	switch strings.TrimSpace(intent) {
	case "locate":
		sb.WriteString("\n\nThe user is asking where something is. Prefer a navigation_card answer.")
	case "instruct":
		sb.WriteString("\n\nThe user is asking how to do something. Prefer a step_by_step_guide answer.")
	}

	return []Message{
		{Role: "system", Content: sb.String()},
		{Role: "user", Content: userMessage},
	}
}
