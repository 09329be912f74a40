// Package resolve maps a song request onto files in the music library.
//
// Resolution runs artist, then album, then track. Each stage lists the
// entries under the previous stage's directory, short-circuits on an exact
// name match, and otherwise hands the candidates that clear the stage's
// similarity threshold to the Engine. The Engine either accepts a lone
// high-confidence candidate or asks the operator to pick, type a path, try a
// different name, or abort.
//
// Artist and album results are memoized in a run-scoped Cache keyed by the
// names as requested, so later songs by the same artist never prompt twice.
package resolve
