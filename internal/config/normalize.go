package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLibrary()
	c.normalizeMatching()
	c.normalizePlaylist()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.LibraryDir = strings.TrimSpace(c.Paths.LibraryDir)
	if c.Paths.LibraryDir == "" {
		if value, ok := os.LookupEnv("SETLIST_LIBRARY_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Paths.LibraryDir = strings.TrimSpace(value)
		} else {
			c.Paths.LibraryDir = defaultLibraryDir
		}
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() {
	exts := make([]string, 0, len(c.Library.Extensions))
	seen := make(map[string]struct{}, len(c.Library.Extensions))
	for _, ext := range c.Library.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Library.Extensions = exts
}

func (c *Config) normalizeMatching() {
	c.Matching.Algorithm = strings.ToLower(strings.TrimSpace(c.Matching.Algorithm))
	if c.Matching.Algorithm == "" {
		c.Matching.Algorithm = defaultMatchingAlgorithm
	}
}

func (c *Config) normalizePlaylist() {
	c.Playlist.Format = strings.ToLower(strings.TrimSpace(c.Playlist.Format))
	if c.Playlist.Format == "" {
		c.Playlist.Format = defaultPlaylistFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
