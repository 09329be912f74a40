package resolve

import (
	"errors"
	"fmt"

	"setlist/internal/library"
)

var (
	// ErrNoCandidates marks an attempt where nothing cleared the threshold.
	ErrNoCandidates = errors.New("no candidates found")
	// ErrAmbiguous marks an attempt with more than one candidate.
	ErrAmbiguous = errors.New("ambiguous candidates")
	// ErrInvalidInput marks an answer the engine could not interpret.
	ErrInvalidInput = errors.New("invalid input")
	// ErrManualPathNotFound marks a typed path that does not exist with the required kind.
	ErrManualPathNotFound = errors.New("manual path not found")
	// ErrAborted is returned when the operator aborts. The run must stop without output.
	ErrAborted = errors.New("aborted by user")
	// ErrFilesystemUnavailable is returned when a library directory cannot be listed.
	ErrFilesystemUnavailable = library.ErrUnavailable
)

// stageError prefixes err with the stage and the requested name while keeping
// the sentinel reachable through errors.Is.
func stageError(stage Stage, name string, err error) error {
	return fmt.Errorf("%s %q: %w", stage, name, err)
}
