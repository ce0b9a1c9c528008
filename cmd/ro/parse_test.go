package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"ro/internal/diagfmt"
)

// newTestCommand builds a root with the global flags and a parse-like child
// whose output goes into the returned buffers.
func newTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "ro"}
	registerGlobalFlags(root)
	child := &cobra.Command{Use: "parse"}
	addParseFlags(child)
	root.AddCommand(child)
	if err := root.PersistentFlags().Set("color", "off"); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	child.SetOut(&stdout)
	child.SetErr(&stderr)
	child.SetContext(context.Background())
	return child, &stdout, &stderr
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseSingleFilePretty(t *testing.T) {
	cmd, stdout, stderr := newTestCommand(t)
	path := writeSource(t, t.TempDir(), "main.ro", "fn main { ret 0 }")

	settings, err := readParseSettings(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs, files, err := parseSingle(cmd, path, settingsOptions(settings))
	if err != nil {
		t.Fatal(err)
	}
	if err := writeParseOutput(cmd, fs, files, settings); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "fn main") || !strings.Contains(stdout.String(), "ret 0") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", stderr.String())
	}
}

func TestParseDirectoryJSONWithErrors(t *testing.T) {
	cmd, stdout, _ := newTestCommand(t)
	if err := cmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("ui", "off"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	writeSource(t, dir, "a.ro", "fn a { x = y }")
	writeSource(t, dir, "b.ro", "fn b {")

	settings, err := readParseSettings(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs, files, err := parseDirectory(cmd, dir, settingsOptions(settings), settings)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeParseOutput(cmd, fs, files, settings); err != nil {
		t.Fatal(err)
	}

	var decoded []diagfmt.FileOutput
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("want 2 files, got %d", len(decoded))
	}
	if decoded[0].Program == nil || decoded[0].Program.Funcs[0].Calls[0].Kind != "Move" {
		t.Fatalf("a.ro: unexpected program %+v", decoded[0].Program)
	}
	if decoded[1].Program != nil || len(decoded[1].Diagnostics) == 0 || decoded[1].Diagnostics[0].Code != "SYN2001" {
		t.Fatalf("b.ro: want SYN2001 and no program, got %+v", decoded[1])
	}
}

func TestReadParseSettingsManifestDefaults(t *testing.T) {
	cmd, _, _ := newTestCommand(t)
	m := &projectManifest{Config: projectConfig{Build: buildConfig{Sources: ".", Format: "yaml", Cache: true}}}
	settings, err := readParseSettings(cmd, m)
	if err != nil {
		t.Fatal(err)
	}
	if settings.format != "yaml" || !settings.cache {
		t.Fatalf("manifest defaults ignored: %+v", settings)
	}
	if settings.jobs <= 0 {
		t.Fatalf("jobs = %d", settings.jobs)
	}
}

func TestQuietDiagnosticsAreShort(t *testing.T) {
	cmd, _, stderr := newTestCommand(t)
	if err := cmd.Root().PersistentFlags().Set("quiet", "true"); err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, t.TempDir(), "w.ro", "fn w { x = a + b + c }")

	settings, err := readParseSettings(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs, files, err := parseSingle(cmd, path, settingsOptions(settings))
	if err != nil {
		t.Fatal(err)
	}
	if err := writeParseOutput(cmd, fs, files, settings); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "warning SYN2005 ") {
		t.Fatalf("want one short warning line, got:\n%s", stderr.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintDiagnosticsReturnsWriteErrors(t *testing.T) {
	for _, quiet := range []bool{false, true} {
		cmd, _, _ := newTestCommand(t)
		path := writeSource(t, t.TempDir(), "w.ro", "fn w { x = a + b + c }")
		settings, err := readParseSettings(cmd, nil)
		if err != nil {
			t.Fatal(err)
		}
		fs, files, err := parseSingle(cmd, path, settingsOptions(settings))
		if err != nil {
			t.Fatal(err)
		}
		cmd.SetErr(failingWriter{})
		if err := printDiagnostics(cmd, fs, files, quiet); err == nil || err.Error() != "disk full" {
			t.Fatalf("quiet=%v: expected write error, got %v", quiet, err)
		}
	}
}
