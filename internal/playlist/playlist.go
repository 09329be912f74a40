package playlist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

const (
	FormatM3U = "m3u"
	FormatPLS = "pls"
)

// Entry is one resolved song.
type Entry struct {
	Path    string
	Title   string
	Artist  string
	Album   string
	Seconds int
}

// Options controls how entry paths are written.
type Options struct {
	// RelativeTo, when set, is the directory paths are made relative to.
	// Paths that cannot be expressed relative to it stay absolute.
	RelativeTo string
}

// Render returns the playlist document for entries in the given format.
func Render(format string, entries []Entry, opts Options) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatM3U:
		return renderM3U(entries, opts)
	case FormatPLS:
		return renderPLS(entries, opts)
	default:
		return "", fmt.Errorf("playlist format: unsupported value %q", format)
	}
}

// renderM3U writes extended M3U:
//
//	#EXTM3U
//	#EXTINF:318,Back in Black - AC/DC
//	/music/AC-DC/Back in Black/02 Shoot to Thrill.mp3
func renderM3U(entries []Entry, opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	for _, entry := range entries {
		path, err := entryPath(entry.Path, opts)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", entry.Seconds, entry.Album, entry.Artist)
		sb.WriteString(path + "\n")
	}
	return sb.String(), nil
}

// renderPLS writes the INI-style PLS format:
//
//	[playlist]
//	File1=/music/AC-DC/Back in Black/02 Shoot to Thrill.mp3
//	Title1=AC/DC - Shoot to Thrill
//	Length1=318
//	NumberOfEntries=1
//	Version=2
func renderPLS(entries []Entry, opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString("[playlist]\n")
	for i, entry := range entries {
		path, err := entryPath(entry.Path, opts)
		if err != nil {
			return "", err
		}
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, path)
		fmt.Fprintf(&sb, "Title%d=%s - %s\n", idx, entry.Artist, entry.Title)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, entry.Seconds)
	}
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(entries))
	sb.WriteString("Version=2\n")
	return sb.String(), nil
}

func entryPath(path string, opts Options) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve playlist entry %q: %w", path, err)
	}
	if opts.RelativeTo == "" {
		return abs, nil
	}
	base, err := filepath.Abs(opts.RelativeTo)
	if err != nil {
		return "", fmt.Errorf("resolve playlist directory %q: %w", opts.RelativeTo, err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return abs, nil
	}
	return rel, nil
}

// WriteFile replaces path with content. Readers never observe a partial file.
func WriteFile(path, content string) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending playlist file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.WriteString(content); err != nil {
		return fmt.Errorf("write playlist data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace playlist file: %w", err)
	}
	return nil
}
