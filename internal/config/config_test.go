package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"setlist/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SETLIST_LIBRARY_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "Music") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	wantLogs := filepath.Join(tempHome, ".local", "share", "setlist", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if diff := cmp.Diff([]string{".m4a", ".mp3"}, cfg.Library.Extensions); diff != "" {
		t.Fatalf("unexpected extensions (-want +got):\n%s", diff)
	}
	if cfg.Matching.Algorithm != "sequence" {
		t.Fatalf("unexpected algorithm: %q", cfg.Matching.Algorithm)
	}
	if cfg.Matching.DirectoryThreshold != 0.5 || cfg.Matching.FileThreshold != 0.4 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Matching)
	}
	if cfg.Matching.AutoAcceptScore != 0.9 {
		t.Fatalf("unexpected auto accept score: %v", cfg.Matching.AutoAcceptScore)
	}
	if cfg.Playlist.Format != "m3u" {
		t.Fatalf("unexpected playlist format: %q", cfg.Playlist.Format)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LibraryDir); !os.IsNotExist(err) {
		t.Fatalf("expected library dir to be left alone, stat err=%v", err)
	}
}

func TestLoadUsesLibraryEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	library := t.TempDir()
	t.Setenv("SETLIST_LIBRARY_DIR", library)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.LibraryDir != library {
		t.Fatalf("expected env library dir %q, got %q", library, cfg.Paths.LibraryDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "setlist.toml")
	library := filepath.Join(tempDir, "music")

	type payload struct {
		Paths struct {
			LibraryDir string `toml:"library_dir"`
		} `toml:"paths"`
		Library struct {
			Extensions []string `toml:"extensions"`
		} `toml:"library"`
		Matching struct {
			Algorithm     string  `toml:"algorithm"`
			FileThreshold float64 `toml:"file_threshold"`
		} `toml:"matching"`
		Playlist struct {
			Format        string `toml:"format"`
			RelativePaths bool   `toml:"relative_paths"`
		} `toml:"playlist"`
	}
	custom := payload{}
	custom.Paths.LibraryDir = library
	custom.Library.Extensions = []string{"FLAC", ".mp3", " .MP3 "}
	custom.Matching.Algorithm = " Levenshtein "
	custom.Matching.FileThreshold = 0.3
	custom.Playlist.Format = "PLS"
	custom.Playlist.RelativePaths = true
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.LibraryDir != library {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if diff := cmp.Diff([]string{".flac", ".mp3"}, cfg.Library.Extensions); diff != "" {
		t.Fatalf("unexpected extensions (-want +got):\n%s", diff)
	}
	if cfg.Matching.Algorithm != "levenshtein" {
		t.Fatalf("expected algorithm to normalize, got %q", cfg.Matching.Algorithm)
	}
	if cfg.Matching.FileThreshold != 0.3 {
		t.Fatalf("expected file threshold override, got %v", cfg.Matching.FileThreshold)
	}
	if cfg.Matching.DirectoryThreshold != 0.5 {
		t.Fatalf("expected directory threshold default, got %v", cfg.Matching.DirectoryThreshold)
	}
	if cfg.Playlist.Format != "pls" || !cfg.Playlist.RelativePaths {
		t.Fatalf("unexpected playlist config: %+v", cfg.Playlist)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "setlist.toml")
	if err := os.WriteFile(configPath, []byte("[matching]\nthreshold = 0.2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "algorithm",
			mutate: func(c *config.Config) { c.Matching.Algorithm = "soundex" },
			want:   "matching.algorithm",
		},
		{
			name:   "threshold out of range",
			mutate: func(c *config.Config) { c.Matching.DirectoryThreshold = 1.5 },
			want:   "matching.directory_threshold",
		},
		{
			name:   "auto accept below threshold",
			mutate: func(c *config.Config) { c.Matching.AutoAcceptScore = 0.3 },
			want:   "matching.auto_accept_score",
		},
		{
			name:   "playlist format",
			mutate: func(c *config.Config) { c.Playlist.Format = "xspf" },
			want:   "playlist.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Matching.AutoAcceptScore != config.Default().Matching.AutoAcceptScore {
		t.Fatalf("sample drifted from defaults: %+v", cfg.Matching)
	}
}
