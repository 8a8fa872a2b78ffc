package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestColoredPlain(t *testing.T) {
	withNoColor(t)
	if got := Colored(); got != Version {
		t.Fatalf("Colored() = %q, want %q", got, Version)
	}
}

func TestColoredKeepsOddVersions(t *testing.T) {
	withNoColor(t)
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Fatalf("Colored() = %q", got)
	}
	Version = "1.2.3"
	if got := Colored(); got != "1.2.3" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestInfoOptionalFields(t *testing.T) {
	withNoColor(t)
	origCommit, origDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = origCommit, origDate })

	GitCommit, BuildDate = "", ""
	if info := Info(); strings.Contains(info, "commit:") || strings.Contains(info, "built:") {
		t.Fatalf("empty fields should be omitted:\n%s", info)
	}

	GitCommit, BuildDate = "abc123def456", "2024-01-15T10:30:00Z"
	info := Info()
	for _, want := range []string{"doccomment " + Version, "commit: abc123def456", "built:  2024-01-15T10:30:00Z"} {
		if !strings.Contains(info, want) {
			t.Fatalf("Info() misses %q:\n%s", want, info)
		}
	}
}
