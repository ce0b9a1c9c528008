package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadProjectManifestFindsUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, buildDefaultManifest("demo"))
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if got, want := m.sourcesPath(), filepath.Join(root, "."); got != want {
		t.Fatalf("sourcesPath = %q, want %q", got, want)
	}
}

func TestLoadProjectManifestMissing(t *testing.T) {
	_, ok, err := loadProjectManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// во временном каталоге манифеста нет, если его нет выше
	if ok {
		t.Skip("a ro.toml exists above the temp directory")
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no package", "[build]\nsources = \"src\"\n", "missing [package]"},
		{"empty name", "[package]\nname = \" \"\n[build]\nsources = \"src\"\n", "missing [package].name"},
		{"no build", "[package]\nname = \"x\"\n", "missing [build]"},
		{"no sources", "[package]\nname = \"x\"\n[build]\ncache = true\n", "missing [build].sources"},
		{"bad format", "[package]\nname = \"x\"\n[build]\nsources = \"src\"\nformat = \"xml\"\n", "[build].format"},
		{"unknown key", "[package]\nname = \"x\"\n[build]\nsources = \"src\"\njobs = 4\n", "unknown key build.jobs"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadProjectConfigBuildSection(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\n[build]\nsources = \"src\"\ncache = true\nformat = \"yaml\"\n")
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Build.Cache || cfg.Build.Format != "yaml" || cfg.Build.Sources != "src" {
		t.Fatalf("unexpected build config %+v", cfg.Build)
	}
}
