// Package songs reads and writes the plain-text setlist format: one record
// per song, each record four non-blank lines (name, artist, album, duration
// as minutes:seconds). Blank lines between records are optional.
//
//	Shoot to Thrill
//	AC/DC
//	Back in Black
//	5:18
package songs
