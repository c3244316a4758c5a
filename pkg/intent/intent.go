package intent

import (
	"log/slog"
	"sync"
)

// Intent is the active query mode of the assistant.
type Intent string

const (
	// Locate answers "where is X" questions.
	Locate Intent = "locate"
	// Instruct answers "how do I X" questions.
	Instruct Intent = "instruct"
)

// String returns the wire form of the intent.
func (i Intent) String() string {
	return string(i)
}

// Prefix returns the display prefix prepended to user messages.
func (i Intent) Prefix() string {
	if i == Instruct {
		return "How do I "
	}
	return "Where is "
}

// State holds the current intent for one chat session.
// It is constructor-injected into the session so the submit
// path never reads ambient globals. Safe for concurrent use:
// the UI reads it while a submission goroutine may set it.
type State struct {
	mu      sync.Mutex
	current Intent
}

// NewState creates an intent state with the default Locate mode.
func NewState() *State {
	return &State{current: Locate}
}

// Get returns the current intent.
func (s *State) Get() Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set changes the current intent. Callers are trusted to pass one
// of the two enumerated values.
func (s *State) Set(i Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(i)
}

// Toggle switches between the two modes and returns the new intent.
func (s *State) Toggle() Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == Locate {
		s.set(Instruct)
	} else {
		s.set(Locate)
	}
	return s.current
}

func (s *State) set(i Intent) {
	slog.Debug("intent_changed", "from", s.current, "to", i)
	s.current = i
}
