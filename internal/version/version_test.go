package version

import (
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit и BuildDate опциональны
	_ = GitCommit
	_ = BuildDate
}

func TestColoredPlain(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc1"
	if got := Colored(false); got != "1.2.3-rc1" {
		t.Errorf("Colored(false) = %q", got)
	}
	Version = "2.0"
	if got := Colored(false); got != "2.0" {
		t.Errorf("Colored(false) = %q", got)
	}
}

func TestSummary(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Summary(false); got != "ro 1.2.3" {
		t.Errorf("Summary = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	want := "ro 1.2.3 (abc123) built 2024-01-15T10:30:00Z"
	if got := Summary(false); got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}
