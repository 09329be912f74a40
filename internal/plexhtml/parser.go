package plexhtml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"setlist/internal/songs"
)

type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldArtist
	fieldAlbum
	fieldDuration
)

// classFields is checked in order; the first prefix that matches wins.
var classFields = []struct {
	prefix string
	field  field
}{
	{"media-duration", fieldDuration},
	{"media-secondary-subtitle", fieldAlbum},
	{"media-primary-subtitle", fieldArtist},
	{"media-title", fieldTitle},
}

// parser holds the capture state for one document.
type parser struct {
	pending field
	current map[field]string
	out     []songs.Request
}

// Parse reads an HTML document and returns the requests found in it.
func Parse(r io.Reader) ([]songs.Request, error) {
	p := &parser{current: make(map[field]string, 4)}
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read plex html: %w", err)
			}
			return p.out, nil
		case html.StartTagToken:
			p.startTag(z.Token())
		case html.EndTagToken:
			p.pending = fieldNone
		case html.TextToken:
			if err := p.text(string(z.Text())); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) startTag(tok html.Token) {
	if tok.DataAtom != atom.Div && tok.DataAtom != atom.Span {
		return
	}
	for _, attr := range tok.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, cf := range classFields {
			if strings.HasPrefix(attr.Val, cf.prefix) {
				p.pending = cf.field
				return
			}
		}
		return
	}
}

func (p *parser) text(data string) error {
	if p.pending == fieldNone {
		return nil
	}
	value := strings.TrimSpace(data)
	if value == "" {
		return nil
	}
	p.current[p.pending] = value
	p.pending = fieldNone
	if len(p.current) < 4 {
		return nil
	}

	duration, err := songs.ParseDuration(p.current[fieldDuration])
	if err != nil {
		return fmt.Errorf("plex entry %d (%s): %w", len(p.out)+1, p.current[fieldTitle], err)
	}
	p.out = append(p.out, songs.Request{
		Name:     p.current[fieldTitle],
		Artist:   p.current[fieldArtist],
		Album:    p.current[fieldAlbum],
		Duration: duration,
	})
	clear(p.current)
	return nil
}
