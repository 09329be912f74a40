// Package assemble runs a full setlist build: parse the song list, resolve
// every entry against the library, and only then render and write the
// playlist. An abort or filesystem failure anywhere leaves the output untouched.
package assemble
