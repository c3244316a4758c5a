package credential

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		wantErr   error
	}{
		{
			name:      "valid key",
			candidate: "sk-" + strings.Repeat("a", 40),
			wantErr:   nil,
		},
		{
			name:      "too short",
			candidate: "sk-short",
			wantErr:   ErrTooShort,
		},
		{
			name:      "empty",
			candidate: "",
			wantErr:   ErrTooShort,
		},
		{
			name:      "wrong prefix",
			candidate: "xk-" + strings.Repeat("a", 40),
			wantErr:   ErrWrongFormat,
		},
		{
			name:      "right prefix but below prefixed minimum",
			candidate: "sk-" + strings.Repeat("a", 20),
			wantErr:   ErrWrongFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(&MemoryStore{})
			err := gate.Validate(tt.candidate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q) = %v, want %v", tt.candidate, err, tt.wantErr)
			}
			if tt.wantErr == nil && !gate.Validated() {
				t.Error("Expected gate validated after successful Validate")
			}
			if tt.wantErr != nil && gate.Validated() {
				t.Error("Gate must not be validated after failed Validate")
			}
		})
	}
}

func TestValidatePersists(t *testing.T) {
	store := &MemoryStore{}
	gate := NewGate(store)

	key := "sk-" + strings.Repeat("b", 40)
	if err := gate.Validate(key); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	stored, _ := store.Get()
	if stored != key {
		t.Errorf("Expected stored key %q, got %q", key, stored)
	}
	if gate.Credential() != key {
		t.Errorf("Expected Credential() %q, got %q", key, gate.Credential())
	}
}

func TestNewGateRestoresStoredKey(t *testing.T) {
	key := "sk-" + strings.Repeat("c", 40)
	store := &MemoryStore{}
	store.Set(key)

	gate := NewGate(store)
	if !gate.Validated() {
		t.Error("Expected gate validated from stored key")
	}
	if gate.Credential() != key {
		t.Errorf("Expected restored credential %q, got %q", key, gate.Credential())
	}
}

func TestNewGateIgnoresMalformedStoredKey(t *testing.T) {
	store := &MemoryStore{}
	store.Set("not-a-key")

	gate := NewGate(store)
	if gate.Validated() {
		t.Error("Malformed stored key must not validate the session")
	}
	if gate.Credential() != "" {
		t.Errorf("Expected empty credential, got %q", gate.Credential())
	}
}

func TestInvalidate(t *testing.T) {
	store := &MemoryStore{}
	gate := NewGate(store)

	key := "sk-" + strings.Repeat("d", 40)
	if err := gate.Validate(key); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if err := gate.Invalidate(); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if gate.Validated() {
		t.Error("Expected gate no longer validated")
	}
	if gate.Credential() != "" {
		t.Error("Expected empty credential after Invalidate")
	}
	if stored, _ := store.Get(); stored != "" {
		t.Errorf("Expected store wiped, got %q", stored)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".dashchat", "credential")
	store := NewFileStore(path)

	// Missing file reads as empty
	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() on missing file error: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty credential, got %q", got)
	}

	key := "sk-" + strings.Repeat("e", 40)
	if err := store.Set(key); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	got, err = store.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != key {
		t.Errorf("Expected %q, got %q", key, got)
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected credential file removed")
	}

	// Deleting again is fine
	if err := store.Delete(); err != nil {
		t.Errorf("Second Delete() error: %v", err)
	}
}
