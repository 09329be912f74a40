// Package main hosts the setlist CLI entrypoint and command graph.
//
// The Cobra command tree turns a plain-text setlist into a playlist (build),
// converts saved Plex playlist pages into that text format (plex-import), and
// scaffolds configuration (config init, config validate). Configuration
// loading and logger setup live here so the internal packages stay free of
// terminal concerns.
package main
