package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "ro.toml"

const noManifestMessage = "no ro.toml found\nplease specify a file or directory explicitly, e.g.:\n  ro parse path/to/src"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type buildConfig struct {
	Sources string `toml:"sources"`
	Cache   bool   `toml:"cache"`
	Format  string `toml:"format"`
}

var outputFormats = map[string]bool{
	"pretty":  true,
	"json":    true,
	"yaml":    true,
	"msgpack": true,
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build") {
		return projectConfig{}, fmt.Errorf("%s: missing [build]", path)
	}
	if !meta.IsDefined("build", "sources") || strings.TrimSpace(cfg.Build.Sources) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [build].sources", path)
	}
	if cfg.Build.Format != "" && !outputFormats[cfg.Build.Format] {
		return projectConfig{}, fmt.Errorf("%s: [build].format must be one of pretty|json|yaml|msgpack, got %q", path, cfg.Build.Format)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}

// sourcesPath resolves [build].sources against the manifest directory.
func (m *projectManifest) sourcesPath() string {
	src := filepath.FromSlash(strings.TrimSpace(m.Config.Build.Sources))
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(m.Root, src)
}
