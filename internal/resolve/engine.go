package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"setlist/internal/config"
	"setlist/internal/console"
	"setlist/internal/library"
	"setlist/internal/logging"
)

// Prompter is the interactive side of disambiguation.
type Prompter interface {
	// PromptLine blocks until one line is read. io.EOF means the input is closed.
	PromptLine(prompt string) (string, error)
	Display(message string, style console.Style)
}

// Attempt is one round of disambiguation for a stage.
type Attempt struct {
	Stage Stage
	Query string
	// Banner explains what failed to match; it is shown before any question.
	Banner string
	// Candidates have already cleared the stage threshold.
	Candidates []Candidate
}

// Engine decides between candidates, prompting when the choice is not certain.
type Engine struct {
	prompter   Prompter
	autoAccept float64
	logger     *slog.Logger
}

// NewEngine builds an engine that confirms a lone candidate without asking
// when its score exceeds autoAccept.
func NewEngine(prompter Prompter, autoAccept float64, logger *slog.Logger) *Engine {
	return &Engine{
		prompter:   prompter,
		autoAccept: autoAccept,
		logger:     logging.NewComponentLogger(logger, "engine"),
	}
}

// Disambiguate runs one attempt. The only errors returned come from the
// prompter; a closed input stream is reported as Aborted.
func (e *Engine) Disambiguate(ctx context.Context, attempt Attempt) (Outcome, error) {
	logger := logging.WithContext(ctx, e.logger)
	candidates := slices.Clone(attempt.Candidates)
	SortCandidates(candidates)

	var (
		outcome Outcome
		err     error
		reason  string
	)
	switch {
	case len(candidates) == 0:
		reason = "no_candidates"
		logging.WarnWithContext(logger, "no candidates above threshold", "no_candidates",
			logging.String("query", attempt.Query),
			logging.Error(ErrNoCandidates),
			logging.String(logging.FieldErrorHint, "try a different name or enter the path"),
			logging.String(logging.FieldImpact, "operator input required"),
		)
		outcome, err = e.noCandidates(logger, attempt)
	case len(candidates) == 1 && candidates[0].Score > e.autoAccept:
		reason = "auto_accept"
		outcome = Confirmed{Candidate: candidates[0]}
	case len(candidates) == 1:
		reason = "single_candidate"
		outcome, err = e.confirmSingle(logger, attempt, candidates[0])
	default:
		reason = "multiple_candidates"
		logger.Debug("presenting candidate menu",
			logging.Error(ErrAmbiguous),
			logging.Int("candidates", len(candidates)),
		)
		outcome, err = e.choose(logger, attempt, candidates)
	}
	if errors.Is(err, io.EOF) {
		outcome, err, reason = Aborted{}, nil, "input_closed"
	}
	if err != nil {
		return nil, fmt.Errorf("read answer: %w", err)
	}

	attrs := logging.DecisionAttrs(string(attempt.Stage)+"_match", outcomeName(outcome), reason)
	attrs = append(attrs,
		logging.String("query", attempt.Query),
		logging.Int("candidates", len(candidates)),
	)
	if confirmed, ok := outcome.(Confirmed); ok {
		attrs = append(attrs,
			logging.String("selected", confirmed.Candidate.Name),
			logging.Float64("score", confirmed.Candidate.Score),
		)
	}
	logger.Info("disambiguation decided", logging.Args(attrs...)...)
	return outcome, nil
}

func (e *Engine) noCandidates(logger *slog.Logger, attempt Attempt) (Outcome, error) {
	for {
		e.prompter.Display(attempt.Banner, console.StyleWarning)
		e.prompter.Display("R) Retry with a different name", console.StyleInfo)
		e.prompter.Display("M) Enter a path manually", console.StyleInfo)
		e.prompter.Display("A) Abort", console.StyleInfo)
		answer, err := e.prompter.PromptLine("Choose R, M or A: ")
		if err != nil {
			return nil, err
		}
		switch normalizeAnswer(answer) {
		case "r":
			return e.retryQuery(logger)
		case "m":
			return e.manualPath(logger, attempt.Stage)
		case "a":
			return Aborted{}, nil
		}
		e.reject(logger, answer, "Answer not recognized")
	}
}

func (e *Engine) confirmSingle(logger *slog.Logger, attempt Attempt, candidate Candidate) (Outcome, error) {
	for {
		e.prompter.Display(attempt.Banner, console.StyleWarning)
		e.prompter.Display("", console.StyleInfo)
		e.prompter.Display("Is the following name correct?", console.StyleInfo)
		e.prompter.Display(candidate.String(), console.StyleInfo)
		answer, err := e.prompter.PromptLine("Y/n (M: enter a path, R: try another name): ")
		if err != nil {
			return nil, err
		}
		switch normalizeAnswer(answer) {
		case "", "y", "yes":
			return Confirmed{Candidate: candidate}, nil
		case "n", "no", "a":
			return Aborted{}, nil
		case "m":
			return e.manualPath(logger, attempt.Stage)
		case "r":
			return e.retryQuery(logger)
		}
		e.reject(logger, answer, "No valid answer given")
	}
}

func (e *Engine) choose(logger *slog.Logger, attempt Attempt, candidates []Candidate) (Outcome, error) {
	for {
		e.prompter.Display("", console.StyleInfo)
		e.prompter.Display(attempt.Banner, console.StyleWarning)
		e.prompter.Display("Choose one of the following:", console.StyleInfo)
		for i, candidate := range candidates {
			e.prompter.Display(fmt.Sprintf("%d) %s", i+1, candidate), console.StyleInfo)
		}
		e.prompter.Display("M) Enter a path manually", console.StyleInfo)
		e.prompter.Display("A) Abort", console.StyleInfo)
		answer, err := e.prompter.PromptLine("Enter a number or press enter for the default (1): ")
		if err != nil {
			return nil, err
		}
		normalized := normalizeAnswer(answer)
		switch normalized {
		case "":
			return Confirmed{Candidate: candidates[0]}, nil
		case "a":
			return Aborted{}, nil
		case "m":
			return e.manualPath(logger, attempt.Stage)
		}
		if !isDigits(normalized) {
			e.reject(logger, answer, "Answer not recognized")
			continue
		}
		index, err := strconv.Atoi(normalized)
		if err != nil || index < 1 || index > len(candidates) {
			e.reject(logger, answer, "Answer out of bounds")
			continue
		}
		return Confirmed{Candidate: candidates[index-1]}, nil
	}
}

// manualPath reads a path until one exists with the kind the stage needs.
// Directory answers are expanded and cleaned; file answers are returned as typed.
func (e *Engine) manualPath(logger *slog.Logger, stage Stage) (Outcome, error) {
	prompt := "Enter the directory path: "
	if stage.IsFile() {
		prompt = "Enter the file path: "
	}
	for {
		answer, err := e.prompter.PromptLine(prompt)
		if err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(answer)
		if raw == "" {
			e.reject(logger, answer, "No valid answer given")
			continue
		}
		if stage.IsFile() {
			if library.IsFile(raw) {
				return ManualPath{Path: raw}, nil
			}
		} else if expanded, err := config.ExpandPath(raw); err == nil && library.IsDir(expanded) {
			return ManualPath{Path: expanded}, nil
		}
		logger.Debug("manual path rejected",
			logging.Error(ErrManualPathNotFound),
			logging.String("path", raw),
		)
		e.prompter.Display("Path not found: "+raw, console.StyleWarning)
	}
}

func (e *Engine) retryQuery(logger *slog.Logger) (Outcome, error) {
	e.prompter.Display("Retry with a different name", console.StylePrompt)
	for {
		answer, err := e.prompter.PromptLine("New name: ")
		if err != nil {
			return nil, err
		}
		if query := strings.TrimSpace(answer); query != "" {
			return RetryWithQuery{Query: query}, nil
		}
		e.reject(logger, answer, "No valid answer given")
	}
}

func (e *Engine) reject(logger *slog.Logger, answer, message string) {
	logger.Debug("answer rejected",
		logging.Error(ErrInvalidInput),
		logging.String("answer", answer),
	)
	e.prompter.Display(message, console.StyleWarning)
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
