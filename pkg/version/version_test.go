package version

import "testing"

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() {
		Version, Commit = origVersion, origCommit
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"defaults", "dev", "none", "dev"},
		{"empty version falls back", "", "none", "dev"},
		{"release with commit", "1.2.0", "abcdef1234567890", "1.2.0 (abcdef1)"},
		{"short commit kept whole", "1.2.0", "abc", "1.2.0 (abc)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
