package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/g5becks/mdtoc/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mdtoc.toml")
	writeFile(t, configPath, `
[targets.readme]
pattern = "README.md"
`)

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ConfigDir != tempDir {
		t.Fatalf("ConfigDir = %q, want %q", cfg.ConfigDir, tempDir)
	}
	if cfg.Defaults.Dialect != "github" {
		t.Fatalf("Defaults.Dialect = %q, want github", cfg.Defaults.Dialect)
	}
	if cfg.Defaults.KeepHeaderLevels != 3 {
		t.Fatalf("Defaults.KeepHeaderLevels = %d, want 3", cfg.Defaults.KeepHeaderLevels)
	}
	if cfg.Defaults.Marker != config.DefaultMarker {
		t.Fatalf("Defaults.Marker = %q, want %q", cfg.Defaults.Marker, config.DefaultMarker)
	}

	target, ok := cfg.Targets["readme"]
	if !ok {
		t.Fatalf("target readme not found")
	}
	if target.Pattern != "README.md" {
		t.Fatalf("Pattern = %q, want README.md", target.Pattern)
	}
}

func TestLoadTargetOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mdtoc.toml")
	writeFile(t, configPath, `
[defaults]
dialect = "github"
keep_header_levels = 2
marker = "<!-- TOC -->"

[targets.docs]
pattern = "docs/**/*.md"
dialect = "gitlab"
keep_header_levels = 6

[targets.readme]
pattern = "README.md"
`)

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	docs := cfg.Targets["docs"]
	if got := cfg.DialectFor(docs); got != "gitlab" {
		t.Fatalf("DialectFor(docs) = %q, want gitlab", got)
	}
	if got := cfg.KeepHeaderLevelsFor(docs); got != 6 {
		t.Fatalf("KeepHeaderLevelsFor(docs) = %d, want 6", got)
	}

	readme := cfg.Targets["readme"]
	if got := cfg.DialectFor(readme); got != "github" {
		t.Fatalf("DialectFor(readme) = %q, want github", got)
	}
	if got := cfg.KeepHeaderLevelsFor(readme); got != 2 {
		t.Fatalf("KeepHeaderLevelsFor(readme) = %d, want 2", got)
	}
	if got := cfg.MarkerFor(readme); got != "<!-- TOC -->" {
		t.Fatalf("MarkerFor(readme) = %q, want <!-- TOC -->", got)
	}
}

func TestLoadRejectsUnknownDialect(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mdtoc.toml")
	writeFile(t, configPath, `
[targets.readme]
pattern = "README.md"
dialect = "asciidoc"
`)

	_, err := config.Load(configPath)
	if err == nil {
		t.Fatalf("Load() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "unknown dialect") {
		t.Fatalf("Load() error = %q, want unknown-dialect message", err.Error())
	}
}

func TestLoadRejectsMissingPattern(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mdtoc.toml")
	writeFile(t, configPath, `
[targets.readme]
dialect = "github"
`)

	_, err := config.Load(configPath)
	if err == nil {
		t.Fatalf("Load() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "missing pattern") {
		t.Fatalf("Load() error = %q, want missing-pattern message", err.Error())
	}
}

func TestLoadRejectsOutOfRangeLevels(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mdtoc.toml")
	writeFile(t, configPath, `
[defaults]
keep_header_levels = 7
`)

	_, err := config.Load(configPath)
	if err == nil {
		t.Fatalf("Load() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "keep_header_levels") {
		t.Fatalf("Load() error = %q, want keep_header_levels message", err.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("Load() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("Load() error = %q, expected missing-file message", err.Error())
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mdtoc.toml")
	writeFile(t, configPath, "not [valid toml")

	_, err := config.Load(configPath)
	if err == nil {
		t.Fatalf("Load() error = nil, want non-nil")
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".mdtoc.toml")
	writeFile(t, configPath, "[defaults]\n")

	nestedDir := filepath.Join(tempDir, "docs", "guides")
	if err := os.MkdirAll(nestedDir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	t.Chdir(nestedDir)

	foundPath, err := config.FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}

	foundPathEval, err := filepath.EvalSymlinks(foundPath)
	if err != nil {
		t.Fatalf("EvalSymlinks(foundPath) error = %v", err)
	}
	configPathEval, err := filepath.EvalSymlinks(configPath)
	if err != nil {
		t.Fatalf("EvalSymlinks(configPath) error = %v", err)
	}

	if foundPathEval != configPathEval {
		t.Fatalf("FindConfigFile() = %q, want %q", foundPathEval, configPathEval)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) error = %v", path, err)
	}
}
