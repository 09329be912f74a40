package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Style is a presentation hint for Display.
type Style int

const (
	StyleInfo Style = iota
	// StyleWarning marks failure banners and rejected answers.
	StyleWarning
	// StyleSuccess marks confirmations.
	StyleSuccess
	// StylePrompt marks retry banners and questions.
	StylePrompt
)

func (s Style) String() string {
	switch s {
	case StyleWarning:
		return "warning"
	case StyleSuccess:
		return "success"
	case StylePrompt:
		return "prompt"
	default:
		return "info"
	}
}

func (s Style) colors() text.Colors {
	switch s {
	case StyleWarning:
		return text.Colors{text.FgYellow}
	case StyleSuccess:
		return text.Colors{text.FgGreen}
	case StylePrompt:
		return text.Colors{text.FgCyan, text.Bold}
	default:
		return nil
	}
}

// Console reads answers from in and writes prompts and messages to out.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	colorize bool
}

// New builds a Console. Colour is enabled when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		colorize: IsTerminal(out),
	}
}

// SetColor overrides terminal detection.
func (c *Console) SetColor(enabled bool) {
	c.colorize = enabled
}

// PromptLine writes prompt and blocks until a full line is read. The trailing
// line terminator is removed. io.EOF is returned only when the input is
// exhausted before any character of the line was read.
func (c *Console) PromptLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, c.paint(prompt, StylePrompt))
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Display writes message followed by a newline.
func (c *Console) Display(message string, style Style) {
	fmt.Fprintln(c.out, c.paint(message, style))
}

// Confirm asks a Y/n question. A blank answer selects defaultYes; anything
// other than y/yes/n/no asks again.
func (c *Console) Confirm(prompt string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		answer, err := c.PromptLine(fmt.Sprintf("%s [%s]: ", prompt, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.Display("No valid answer given", StyleWarning)
	}
}

func (c *Console) paint(message string, style Style) string {
	if !c.colorize {
		return message
	}
	colors := style.colors()
	if len(colors) == 0 {
		return message
	}
	return colors.Sprint(message)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
