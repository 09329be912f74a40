// Package playlist renders resolved songs as M3U or PLS documents and writes
// them atomically.
package playlist
