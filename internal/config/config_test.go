package config

import (
	"os"
	"path/filepath"
	"testing"

	"sci-translator/internal/errs"
)

func TestLoad_EnvOverrides(t *testing.T) {
	// given
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("TARGET_ENCODING", "cp862")
	t.Setenv("SPLIT_LINES", "not-a-number")

	// when
	cfg := Load()

	// then
	if cfg.WorkerCount != 2 || cfg.TargetEncoding != "cp862" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SplitLines != 250 {
		t.Errorf("SplitLines = %d, want fallback 250", cfg.SplitLines)
	}
	if cfg.SourceEncoding != "windows-1252" {
		t.Errorf("SourceEncoding = %q", cfg.SourceEncoding)
	}
}

func TestProject_SaveLoadApply(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), DefaultProjectFile)
	pc := &ProjectConfig{
		Game:    GameConfig{Name: "KQ6", TargetLanguage: "he"},
		Corpus:  CorpusConfig{Delimiter: "quotes", SourceEncoding: "cp1252"},
		Workers: 3,
	}
	if err := SaveProject(path, pc); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	// when
	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	cfg := &Config{Delimiter: "braces", SourceEncoding: "windows-1252", TargetEncoding: "windows-1255", TargetScript: "hebrew", WorkerCount: 8}
	cfg.Apply(loaded)

	// then
	if cfg.GameName != "KQ6" || cfg.Delimiter != "quotes" || cfg.SourceEncoding != "cp1252" || cfg.WorkerCount != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TargetEncoding != "windows-1255" {
		t.Errorf("TargetEncoding = %q, empty project value should not override", cfg.TargetEncoding)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadProject_MissingIsZero(t *testing.T) {
	pc, err := LoadProject(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || pc.Game.Name != "" {
		t.Fatalf("LoadProject = %+v, %v", pc, err)
	}
}

func TestLoadProject_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("game: [unclosed"), 0644)

	_, err := LoadProject(path)

	if !errs.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{SourceEncoding: "windows-1252", TargetEncoding: "windows-1255", TargetScript: "hebrew", WorkerCount: 1}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad encoding", func(c *Config) { c.TargetEncoding = "ebcdic" }},
		{"bad script", func(c *Config) { c.TargetScript = "klingon" }},
		{"no workers", func(c *Config) { c.WorkerCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errs.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}
