package songs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
)

// Request is one song to resolve against the library.
type Request struct {
	Name     string
	Artist   string
	Album    string
	Duration time.Duration
}

// String renders the request as "Artist - Album - Name".
func (r Request) String() string {
	return r.Artist + " - " + r.Album + " - " + r.Name
}

// Seconds returns the duration rounded down to whole seconds.
func (r Request) Seconds() int {
	return int(r.Duration / time.Second)
}

const fieldsPerRecord = 4

// Parse reads every record from r. A trailing record with fewer than four
// lines, or a malformed duration, is an error naming the offending line.
func Parse(r io.Reader) ([]Request, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		out       []Request
		fields    [fieldsPerRecord]string
		filled    int
		lineNo    int
		startLine int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		if filled == 0 {
			startLine = lineNo
		}
		fields[filled] = line
		filled++
		if filled < fieldsPerRecord {
			continue
		}
		duration, err := ParseDuration(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, Request{
			Name:     fields[0],
			Artist:   fields[1],
			Album:    fields[2],
			Duration: duration,
		})
		filled = 0
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read setlist: %w", err)
	}
	if filled != 0 {
		return nil, fmt.Errorf("line %d: incomplete record (%d of %d lines)", startLine, filled, fieldsPerRecord)
	}
	return out, nil
}

// ParseDuration accepts "m:ss" or "h:mm:ss".
func ParseDuration(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q: want minutes:seconds", value)
	}
	var total int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q: %q is not a non-negative number", value, part)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid duration %q: %d exceeds 59", value, n)
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, nil
}

// FormatDuration renders d as "m:ss", or "h:mm:ss" from one hour upward.
func FormatDuration(d time.Duration) string {
	total := int(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Write emits reqs in the format Parse reads, one blank line after each record.
func Write(w io.Writer, reqs []Request) error {
	bw := bufio.NewWriter(w)
	for _, req := range reqs {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n%s\n%s\n\n", req.Name, req.Artist, req.Album, FormatDuration(req.Duration)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile atomically replaces path with reqs in the setlist format.
func WriteFile(path string, reqs []Request) error {
	var buf bytes.Buffer
	if err := Write(&buf, reqs); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write setlist %s: %w", path, err)
	}
	return nil
}
