package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validatePlaylist(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	switch c.Matching.Algorithm {
	case "sequence", "levenshtein":
	default:
		return fmt.Errorf("matching.algorithm: unsupported value %q (use sequence or levenshtein)", c.Matching.Algorithm)
	}
	if err := ensureUnitRangeMap(map[string]float64{
		"matching.directory_threshold": c.Matching.DirectoryThreshold,
		"matching.file_threshold":      c.Matching.FileThreshold,
		"matching.auto_accept_score":   c.Matching.AutoAcceptScore,
	}); err != nil {
		return err
	}
	if c.Matching.AutoAcceptScore < c.Matching.DirectoryThreshold || c.Matching.AutoAcceptScore < c.Matching.FileThreshold {
		return errors.New("matching.auto_accept_score must not be below the candidate thresholds")
	}
	return nil
}

func (c *Config) validatePlaylist() error {
	switch c.Playlist.Format {
	case "m3u", "pls":
		return nil
	default:
		return fmt.Errorf("playlist.format: unsupported value %q (use m3u or pls)", c.Playlist.Format)
	}
}

func ensureUnitRangeMap(values map[string]float64) error {
	for key, value := range values {
		if value < 0 || value >= 1 {
			return fmt.Errorf("%s must be in [0, 1)", key)
		}
	}
	return nil
}
