package ui

import (
	"fmt"
	"strings"

	"dashchat/pkg/api"
	"dashchat/pkg/assist"
	"dashchat/pkg/ui/styles"
)

const (
	userLabel      = "You: "
	assistantLabel = "Assistant: "
)

// renderConversation renders the message history as wrapped lines ready
// for the scrollable viewport.
func renderConversation(messages []assist.Message, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for i, msg := range messages {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, renderMessage(msg, width)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func renderMessage(msg assist.Message, width int) []string {
	label := assistantLabel
	labelStyle := styles.AssistantLabelStyle
	if msg.IsUser {
		label = userLabel
		labelStyle = styles.UserLabelStyle
	}

	var lines []string
	if msg.Text != "" {
		avail := width - len(label)
		if avail < 1 {
			avail = 1
		}
		wrapped := wrapText(msg.Text, avail)
		lines = append(lines, labelStyle.Render(label)+styles.TextStyle.Render(wrapped[0]))
		for _, rest := range wrapped[1:] {
			lines = append(lines, styles.TextStyle.Render(rest))
		}
	} else {
		lines = append(lines, labelStyle.Render(strings.TrimRight(label, " ")))
	}

	if msg.Card != nil {
		lines = append(lines, renderCard(msg.Card, width)...)
	}
	if msg.Guide != nil {
		lines = append(lines, renderGuide(msg.Guide, width)...)
	}
	return lines
}

// renderCard draws a navigation card as a bordered box.
func renderCard(card *api.NavigationCard, width int) []string {
	innerWidth := width - 4
	if innerWidth < 1 {
		innerWidth = 1
	}

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(truncateToWidth(card.Title, innerWidth)))
	sb.WriteString("\n")
	for _, line := range wrapText(card.Description, innerWidth) {
		sb.WriteString(styles.TextStyle.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.LinkStyle.Render(truncateToWidth(card.Link, innerWidth)))

	box := styles.CardBoxStyle.Width(width - 2).Render(sb.String())
	return strings.Split(box, "\n")
}

// renderGuide draws a step-by-step guide as a bordered box.
func renderGuide(guide *api.StepGuide, width int) []string {
	innerWidth := width - 4
	if innerWidth < 1 {
		innerWidth = 1
	}

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(truncateToWidth(guide.Task, innerWidth)))

	for _, step := range guide.Steps {
		sb.WriteString("\n")
		head := fmt.Sprintf("%d. %s", step.StepNumber, step.Instruction)
		for i, line := range wrapText(head, innerWidth) {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(styles.TextStyle.Render(line))
		}
		if step.Location != "" {
			detail := "   at " + step.Location
			if step.ElementDescription != "" {
				detail += " (" + step.ElementDescription + ")"
			}
			for _, line := range wrapText(detail, innerWidth) {
				sb.WriteString("\n")
				sb.WriteString(styles.TextMutedStyle.Render(line))
			}
		}
	}

	if guide.DestinationPage != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.LinkStyle.Render(truncateToWidth(guide.DestinationPage, innerWidth)))
	}

	box := styles.GuideBoxStyle.Width(width - 2).Render(sb.String())
	return strings.Split(box, "\n")
}

// lastReplyText returns the most recent assistant message text for the
// copy-to-clipboard action.
func lastReplyText(messages []assist.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if !messages[i].IsUser {
			return messages[i].Text
		}
	}
	return ""
}
