package output

import (
	"bytes"
	"os"
	"testing"
)

func TestNewColorScheme_Disabled(t *testing.T) {
	tests := []struct {
		name    string
		noColor bool
	}{
		{name: "noColor flag", noColor: true},
		{name: "non-TTY writer", noColor: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewColorScheme(&bytes.Buffer{}, tt.noColor)

			if !cs.Disabled {
				t.Error("expected colors to be disabled")
			}
			if got := cs.Cluster("%s", "hv-east"); got != "hv-east" {
				t.Errorf("Cluster() = %q, want plain text", got)
			}
			if got := cs.StatusColor(true)("%s", "Failed"); got != "Failed" {
				t.Errorf("StatusColor(true)() = %q, want plain text", got)
			}
		})
	}
}

func TestNewColorScheme_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cs := NewColorScheme(f, false)
	if !cs.Disabled {
		t.Error("expected NO_COLOR to disable colors")
	}
	if got := cs.Error("%s:", "Error loading harvester plugin"); got != "Error loading harvester plugin:" {
		t.Errorf("Error() = %q, want plain text", got)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("bytes.Buffer is not a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("regular file is not a terminal")
	}
}
