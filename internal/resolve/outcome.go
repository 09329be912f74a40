package resolve

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Stage names one step of the artist, album, track pipeline.
type Stage string

const (
	StageArtist Stage = "artist"
	StageAlbum  Stage = "album"
	StageTrack  Stage = "track"
)

// IsFile reports whether the stage resolves a file rather than a directory.
func (s Stage) IsFile() bool {
	return s == StageTrack
}

// Candidate is one listing entry scored against the query.
type Candidate struct {
	// Name is what the operator sees. Track names have the extension and
	// leading track number removed.
	Name string
	// Path is the filesystem location selecting the candidate yields.
	Path  string
	Score float64
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%d%%)", c.Name, int(math.Floor(c.Score*100+1e-9)))
}

// SortCandidates orders candidates by descending score. Equal scores keep
// their listing order.
func SortCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// Outcome is the result of one disambiguation attempt. It is implemented only
// by Confirmed, RetryWithQuery, ManualPath, and Aborted.
type Outcome interface {
	outcome()
}

// Confirmed selects a listed candidate.
type Confirmed struct {
	Candidate Candidate
}

// RetryWithQuery asks the resolver to list again and match against Query.
type RetryWithQuery struct {
	Query string
}

// ManualPath carries a path the operator typed and the engine verified.
type ManualPath struct {
	Path string
}

// Aborted ends the run.
type Aborted struct{}

func (Confirmed) outcome()      {}
func (RetryWithQuery) outcome() {}
func (ManualPath) outcome()     {}
func (Aborted) outcome()        {}

func outcomeName(o Outcome) string {
	switch o.(type) {
	case Confirmed:
		return "confirmed"
	case RetryWithQuery:
		return "retry"
	case ManualPath:
		return "manual_path"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("%T", o)
	}
}
