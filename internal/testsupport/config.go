package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"setlist/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The library directory is created empty; use WithTracks to populate it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfgVal.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTracks creates the given library-relative track files, for example
// "AC-DC/Back in Black/01 Hells Bells.mp3".
func WithTracks(relPaths ...string) ConfigOption {
	return func(b *configBuilder) {
		MakeLibrary(b.t, b.cfg.Paths.LibraryDir, relPaths...)
	}
}

// WithPlaylistFormat overrides the playlist format on the test config.
func WithPlaylistFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Playlist.Format = format
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}
