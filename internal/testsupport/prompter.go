package testsupport

import (
	"io"
	"strings"

	"setlist/internal/console"
)

// Prompter replays scripted answers and records everything shown to the
// operator. Once the script runs out, PromptLine returns io.EOF.
type Prompter struct {
	Answers  []string
	Prompts  []string
	Messages []string
}

// NewPrompter returns a Prompter that answers with the given lines in order.
func NewPrompter(answers ...string) *Prompter {
	return &Prompter{Answers: answers}
}

// PromptLine implements resolve.Prompter.
func (p *Prompter) PromptLine(prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if len(p.Answers) == 0 {
		return "", io.EOF
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}

// Display implements resolve.Prompter.
func (p *Prompter) Display(message string, _ console.Style) {
	p.Messages = append(p.Messages, message)
}

// Shown reports whether any displayed message contains substr.
func (p *Prompter) Shown(substr string) bool {
	for _, msg := range p.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
