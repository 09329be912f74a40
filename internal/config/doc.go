// Package config loads, normalizes, and validates setlist configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SETLIST_LIBRARY_DIR. The Config type centralizes every knob the CLI and the
// resolver need: where the music library lives, which media extensions count
// as tracks, how strict fuzzy matching is, and how playlists are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
