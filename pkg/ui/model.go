// Package ui implements the terminal chat panel for the dashboard
// assistant.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"dashchat/pkg/assist"
	"dashchat/pkg/intent"
	"dashchat/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	panelTitle     = "Dashboard Assistant"
	inputHeight    = 3
	footerChat     = "Enter Send | Ctrl+T Intent | Tab Focus | Ctrl+R Reset key | Ctrl+C Quit"
	footerViewport = "Up/Down Scroll | y Copy | Tab Input | Ctrl+C Quit"
	footerKey      = "Enter Validate | Ctrl+C Quit"
	keyPromptText  = "Enter your API key to start chatting."
)

// FocusTarget indicates which part of the chat panel has focus.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusViewport
)

// turnDoneMsg signals that a submission finished and the session state
// settled.
type turnDoneMsg struct{}

// Model is the root Bubble Tea model for the chat panel.
type Model struct {
	session *assist.Session

	textarea textarea.Model
	keyInput textinput.Model
	spin     spinner.Model

	width   int
	height  int
	scrollY int
	follow  bool
	focused FocusTarget

	credentialErr string
}

// NewModel creates the chat panel over a session.
func NewModel(session *assist.Session) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type your question..."
	ta.SetHeight(inputHeight)
	ta.Focus()

	ki := textinput.New()
	ki.Placeholder = "sk-..."
	ki.EchoMode = textinput.EchoPassword
	ki.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return &Model{
		session:  session,
		textarea: ta,
		keyInput: ki,
		spin:     sp,
		follow:   true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(m.contentWidth())
		m.keyInput.SetWidth(m.contentWidth())
		m.clampScroll()
		return m, nil

	case spinner.TickMsg:
		if m.session.State() == assist.StateSubmitting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case turnDoneMsg:
		m.follow = true
		m.clampScroll()
		if m.session.State() == assist.StateAwaitingCredential {
			m.keyInput.Reset()
			m.keyInput.Focus()
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.session.State() == assist.StateAwaitingCredential {
		return m.handleCredentialKey(msg)
	}

	switch msg.String() {
	case "ctrl+t":
		m.session.Intent().Toggle()
		return m, nil

	case "ctrl+r":
		if err := m.session.ResetCredential(); err == nil {
			m.credentialErr = ""
			m.keyInput.Reset()
			m.keyInput.Focus()
		}
		return m, nil

	case "tab":
		m.toggleFocus()
		return m, nil

	case "up", "down", "pgup", "pgdown":
		m.handleScroll(msg.String())
		return m, nil
	}

	if m.focused == FocusViewport {
		if msg.String() == "y" {
			return m, m.copyLastReply()
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m, m.submitTyped()
	}

	// Digits select a conversation starter while the input is empty.
	if starterCmd := m.maybeStarter(msg); starterCmd != nil {
		return m, starterCmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) handleCredentialKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		candidate := m.keyInput.Value()
		if err := m.session.ProvideCredential(candidate); err != nil {
			m.credentialErr = err.Error()
			return m, nil
		}
		m.credentialErr = ""
		m.keyInput.Reset()
		m.focused = FocusInput
		m.textarea.Focus()
		m.follow = true
		return m, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m *Model) submitTyped() tea.Cmd {
	if m.session.State() != assist.StateIdle {
		return nil
	}
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return nil
	}
	m.textarea.Reset()
	m.follow = true

	return tea.Batch(m.spin.Tick, func() tea.Msg {
		// Precondition failures are logged by the session and leave the
		// history untouched.
		_ = m.session.Submit(context.Background(), text)
		return turnDoneMsg{}
	})
}

// maybeStarter maps the digit keys to conversation starters when the
// input is empty.
func (m *Model) maybeStarter(msg tea.KeyPressMsg) tea.Cmd {
	if strings.TrimSpace(m.textarea.Value()) != "" {
		return nil
	}
	if m.session.State() != assist.StateIdle || !m.startersVisible() {
		return nil
	}

	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return nil
	}

	starters := assist.Starters()
	idx := int(key[0] - '1')
	if idx >= len(starters) {
		return nil
	}

	starter := starters[idx]
	m.follow = true
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		_ = m.session.SubmitStarter(context.Background(), starter)
		return turnDoneMsg{}
	})
}

func (m *Model) toggleFocus() {
	if m.focused == FocusInput {
		m.focused = FocusViewport
		m.textarea.Blur()
	} else {
		m.focused = FocusInput
		m.textarea.Focus()
	}
}

func (m *Model) handleScroll(key string) {
	maxScroll := m.maxScroll()

	switch key {
	case "up":
		if m.scrollY > 0 {
			m.scrollY--
			m.follow = false
		}
	case "down":
		if m.scrollY < maxScroll {
			m.scrollY++
		}
		m.follow = m.scrollY >= maxScroll
	case "pgup":
		m.scrollY -= 10
		if m.scrollY < 0 {
			m.scrollY = 0
		}
		m.follow = false
	case "pgdown":
		m.scrollY += 10
		if m.scrollY > maxScroll {
			m.scrollY = maxScroll
		}
		m.follow = m.scrollY >= maxScroll
	}
}

func (m *Model) copyLastReply() tea.Cmd {
	text := lastReplyText(m.session.Messages())
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		_, _ = fmt.Fprint(os.Stdout, osc52.New(text))
		return nil
	}
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var content string
	switch {
	case m.width <= 0 || m.height <= 0:
		content = ""
	case m.session.State() == assist.StateAwaitingCredential:
		content = m.credentialView()
	default:
		content = m.chatView()
	}
	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m *Model) credentialView() string {
	width := m.contentWidth()

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(truncateToWidth(panelTitle, width)))
	sb.WriteString("\n\n")
	sb.WriteString(styles.TextStyle.Render(keyPromptText))
	sb.WriteString("\n\n")
	sb.WriteString(m.keyInput.View())
	if m.credentialErr != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorStyle.Render(truncateToWidth(m.credentialErr, width)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(styles.FooterStyle.Render(truncateToWidth(footerKey, width)))

	return styles.BoxStyle.Width(m.width - 2).Render(sb.String())
}

func (m *Model) chatView() string {
	width := m.contentWidth()

	header := styles.TitleStyle.Render(truncateToWidth(panelTitle, width)) +
		"  " + styles.TextMutedStyle.Render(m.intentHint())

	body := renderConversation(m.session.Messages(), width)

	var extra []string
	if m.startersVisible() {
		extra = append(extra, "", styles.TextMutedStyle.Render("Try asking:"))
		for i, st := range assist.Starters() {
			line := fmt.Sprintf("  %d. %s%s", i+1, st.Intent.Prefix(), st.Text)
			extra = append(extra, styles.TextStyle.Render(truncateToWidth(line, width)))
		}
	}
	if m.session.State() == assist.StateSubmitting {
		extra = append(extra, "", m.spin.View()+styles.TextMutedStyle.Render(" Thinking..."))
	}
	body = append(body, extra...)

	viewportHeight := m.viewportHeight()
	start := m.scrollY
	if m.follow {
		start = len(body) - viewportHeight
	}
	if start > len(body)-viewportHeight {
		start = len(body) - viewportHeight
	}
	if start < 0 {
		start = 0
	}
	end := start + viewportHeight
	if end > len(body) {
		end = len(body)
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, header)
	lines = append(lines, body[start:end]...)
	for len(lines) < 1+viewportHeight {
		lines = append(lines, "")
	}

	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, strings.Split(m.textarea.View(), "\n")...)

	footer := footerChat
	if m.focused == FocusViewport {
		footer = footerViewport
	}
	lines = append(lines, styles.FooterStyle.Render(truncateToWidth(footer, width)))

	return styles.BoxStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// intentHint names the question mode in the header.
func (m *Model) intentHint() string {
	if m.session.Intent().Get() == intent.Instruct {
		return `mode: how do I (Ctrl+T)`
	}
	return `mode: where is (Ctrl+T)`
}

// startersVisible reports whether the starter list should show. It
// disappears once a real turn lands in the history.
func (m *Model) startersVisible() bool {
	return len(m.session.Messages()) <= 1
}

func (m *Model) contentWidth() int {
	width := m.width - 4
	if width < 1 {
		return 1
	}
	return width
}

func (m *Model) viewportHeight() int {
	// Box border (2) + header + separator + textarea + footer.
	height := m.height - 2 - 1 - 1 - inputHeight - 1
	if height < 1 {
		return 1
	}
	return height
}

func (m *Model) maxScroll() int {
	body := renderConversation(m.session.Messages(), m.contentWidth())
	max := len(body) - m.viewportHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) clampScroll() {
	if max := m.maxScroll(); m.scrollY > max {
		m.scrollY = max
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
}
