// Package console is the interactive I/O provider used during resolution.
//
// Console reads one line at a time from the operator and writes styled
// messages back. Styles are purely cosmetic: colour is applied only when the
// output is a terminal, and tests drive a Console over plain buffers.
package console
