package assist

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"dashchat/pkg/api"
	"dashchat/pkg/credential"
	"dashchat/pkg/intent"
	"dashchat/pkg/pagectx"
)

// State is the session's position in the chat lifecycle.
type State int

const (
	// StateAwaitingCredential blocks submits until a valid key is entered.
	StateAwaitingCredential State = iota
	// StateIdle accepts a new submission.
	StateIdle
	// StateSubmitting has one turn in flight; further submits are rejected.
	StateSubmitting
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateAwaitingCredential:
		return "awaiting_credential"
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Submit precondition violations. None of these touch the history.
var (
	ErrBusy         = errors.New("a submission is already in flight")
	ErrNoCredential = errors.New("no valid credential held")
	ErrEmptyMessage = errors.New("message text is empty")
)

const (
	welcomeText = "Hi! I can help you find your way around the dashboard. " +
		"Ask me where something is, or how to do something."
	reauthText = "Your API key was rejected by the assistant service. " +
		"Please enter a valid key to continue."
	apologyText = "Sorry, something went wrong while answering that. Please try again."
)

// Client is the outbound port to the completion service.
type Client interface {
	Send(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Session orchestrates one chat conversation: it owns the append-only
// message history, guards against concurrent submissions, and drives
// the credential lifecycle.
type Session struct {
	mu        sync.Mutex
	state     State
	messages  []Message
	intent    *intent.State
	gate      *credential.Gate
	collector pagectx.Collector
	client    Client
}

// NewSession creates a session. A previously persisted, still-valid
// credential skips the credential prompt and seeds the welcome message.
func NewSession(gate *credential.Gate, in *intent.State, collector pagectx.Collector, client Client) *Session {
	s := &Session{
		state:     StateAwaitingCredential,
		intent:    in,
		gate:      gate,
		collector: collector,
		client:    client,
	}

	if gate.Validated() {
		s.state = StateIdle
		s.messages = []Message{{Text: welcomeText}}
	}

	slog.Info("session_created", "state", s.state)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Intent returns the session's intent state.
func (s *Session) Intent() *intent.State {
	return s.intent
}

// Messages returns a copy of the conversation history in append order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ProvideCredential validates a candidate key. On success the history
// is reset to a single welcome message and the session becomes idle.
func (s *Session) ProvideCredential(candidate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gate.Validate(candidate); err != nil {
		return err
	}

	s.messages = []Message{{Text: welcomeText}}
	s.state = StateIdle
	return nil
}

// ResetCredential wipes the stored key and all history and returns the
// session to the credential prompt.
func (s *Session) ResetCredential() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.state = StateAwaitingCredential
	slog.Info("session_credential_reset")
	return s.gate.Invalidate()
}

// Submit runs one turn using the session's current intent.
func (s *Session) Submit(ctx context.Context, text string) error {
	return s.submit(ctx, text, s.intent.Get())
}

// SubmitStarter applies a conversation starter: it sets the intent and
// submits with that explicit value in one step.
func (s *Session) SubmitStarter(ctx context.Context, starter Starter) error {
	s.intent.Set(starter.Intent)
	return s.submit(ctx, starter.Text, starter.Intent)
}

// submit implements the turn sequence: append the user message, capture
// a fresh page snapshot, dispatch the request, classify the response,
// and append exactly one assistant message.
func (s *Session) submit(ctx context.Context, text string, in intent.Intent) error {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	switch {
	case s.state == StateSubmitting:
		s.mu.Unlock()
		slog.Debug("submit_rejected", "reason", "busy")
		return ErrBusy
	case !s.gate.Validated():
		s.mu.Unlock()
		slog.Debug("submit_rejected", "reason", "no_credential")
		return ErrNoCredential
	case trimmed == "":
		s.mu.Unlock()
		slog.Debug("submit_rejected", "reason", "empty")
		return ErrEmptyMessage
	}

	s.state = StateSubmitting
	s.messages = append(s.messages, Message{Text: in.Prefix() + trimmed, IsUser: true})
	key := s.gate.Credential()
	s.mu.Unlock()

	slog.Info("submit_start", "intent", in, "text_length", len(trimmed))

	// Snapshot capture never fails the turn; it degrades to empty context.
	snap, err := s.collector.Capture(ctx)
	if err != nil {
		slog.Warn("page_capture_failed", "error", err)
		snap = pagectx.Snapshot{}
	}

	resp, err := s.client.Send(ctx, api.ChatRequest{
		Message: trimmed,
		PageDOM: snap.Serialize(),
		APIKey:  key,
		Intent:  in.String(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	// A credential reset issued while the turn was in flight already wiped
	// the history; the stale turn is dropped rather than appended to it.
	if s.state != StateSubmitting {
		slog.Debug("submit_dropped", "reason", "session_reset")
		return nil
	}

	if err != nil {
		if errors.Is(err, api.ErrInvalidCredential) {
			if ierr := s.gate.Invalidate(); ierr != nil {
				slog.Error("credential_invalidate_failed", "error", ierr)
			}
			s.state = StateAwaitingCredential
			s.messages = append(s.messages, Message{Text: reauthText})
			slog.Warn("submit_auth_failed")
			return nil
		}

		s.state = StateIdle
		s.messages = append(s.messages, Message{Text: apologyText})
		slog.Error("submit_failed", "error", err)
		return nil
	}

	reply := buildReply(resp)
	s.messages = append(s.messages, reply)
	s.state = StateIdle
	slog.Info("submit_done",
		"has_card", reply.Card != nil,
		"has_guide", reply.Guide != nil)
	return nil
}

// buildReply classifies a successful response. A pre-structured card or
// guide is authoritative; only free-text replies go through the
// normalizer.
func buildReply(resp *api.ChatResponse) Message {
	switch {
	case resp.Card != nil:
		return Message{Text: resp.Reply, Card: resp.Card}
	case resp.Guide != nil:
		return Message{Text: resp.Reply, Guide: resp.Guide}
	default:
		n := Normalize(resp.Reply)
		return Message{Text: n.Text, Card: n.Card, Guide: n.Guide}
	}
}
