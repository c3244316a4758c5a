// Package credential validates and persists the user-supplied API key
// that gates the chat assistant. Validation here is syntactic only: a
// key that passes can still be rejected by the completion service, which
// is only discovered on a real request.
package credential

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	keyPrefix         = "sk-"
	minLength         = 20
	minPrefixedLength = 40
)

// Validation error classes, surfaced as inline form feedback.
var (
	ErrTooShort    = errors.New("API key is too short")
	ErrWrongFormat = fmt.Errorf("API key must start with %q", keyPrefix)
)

// Gate validates candidate keys and owns the persisted credential.
type Gate struct {
	store     Store
	value     string
	validated bool
}

// NewGate creates a gate over the given store. A previously persisted
// key that still passes the syntactic rules marks the session validated
// immediately.
func NewGate(store Store) *Gate {
	g := &Gate{store: store}

	stored, err := store.Get()
	if err != nil {
		slog.Warn("credential_load_failed", "error", err)
		return g
	}
	if stored != "" && check(stored) == nil {
		g.value = stored
		g.validated = true
		slog.Info("credential_restored")
	}

	return g
}

// Check applies the syntactic key rules without touching any store. The
// completion service runs the same rules before forwarding a key upstream.
func Check(candidate string) error {
	return check(candidate)
}

// check applies the syntactic rules in order, first failure wins.
func check(candidate string) error {
	if len(candidate) < minLength {
		return ErrTooShort
	}
	if !strings.HasPrefix(candidate, keyPrefix) || len(candidate) < minPrefixedLength {
		return ErrWrongFormat
	}
	return nil
}

// Validate checks a candidate key and, on success, persists it and
// marks the session validated.
func (g *Gate) Validate(candidate string) error {
	candidate = strings.TrimSpace(candidate)

	if err := check(candidate); err != nil {
		slog.Debug("credential_rejected", "reason", err)
		return err
	}

	if err := g.store.Set(candidate); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	g.value = candidate
	g.validated = true
	slog.Info("credential_validated")
	return nil
}

// Validated reports whether a syntactically valid credential is held.
func (g *Gate) Validated() bool {
	return g.validated
}

// Credential returns the held key, empty when not validated.
func (g *Gate) Credential() string {
	if !g.validated {
		return ""
	}
	return g.value
}

// Invalidate removes the persisted credential and clears the validated
// flag. Called on explicit reset and when the completion service
// signals an authentication failure.
func (g *Gate) Invalidate() error {
	g.value = ""
	g.validated = false

	if err := g.store.Delete(); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	slog.Info("credential_invalidated")
	return nil
}
