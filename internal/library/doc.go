// Package library lists the artist, album, and track candidates of an on-disk
// music library laid out as <root>/<artist>/<album>/<track file>.
//
// Listings are synchronous and never cached: every call re-reads the
// directory. Any failure to read a directory that was expected to exist is
// reported as ErrUnavailable, which the resolver treats as fatal.
package library
