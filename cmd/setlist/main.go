package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"setlist/internal/assemble"
	"setlist/internal/resolve"
)

const (
	exitOK = iota
	exitAborted
	exitUsage
	exitMissingInput
	exitFilesystem
	exitFailure
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, resolve.ErrAborted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, resolve.ErrAborted):
		return exitAborted
	case errors.As(err, &usage):
		return exitUsage
	case errors.Is(err, assemble.ErrInputNotFound), errors.Is(err, assemble.ErrLibraryNotFound):
		return exitMissingInput
	case errors.Is(err, resolve.ErrFilesystemUnavailable):
		return exitFilesystem
	default:
		return exitFailure
	}
}

// usageError marks mistakes in how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}
