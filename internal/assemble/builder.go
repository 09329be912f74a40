package assemble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"setlist/internal/config"
	"setlist/internal/library"
	"setlist/internal/logging"
	"setlist/internal/playlist"
	"setlist/internal/resolve"
	"setlist/internal/songs"
)

var (
	// ErrInputNotFound is returned when the song list does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrLibraryNotFound is returned when the library root is not a directory.
	ErrLibraryNotFound = errors.New("library not found")
	// ErrOutputLocked is returned when another build holds the output lock.
	ErrOutputLocked = errors.New("output is locked by another build")
)

// OutputBanner precedes the playlist when it is printed instead of written.
const OutputBanner = "------OUTPUT------"

// Options describes one build.
type Options struct {
	InputPath  string
	LibraryDir string
	// OutputPath is where the playlist is written. Empty prints it to the console.
	OutputPath string
	// Format overrides the configured playlist format. When empty the output
	// extension is consulted before the config.
	Format        string
	RelativePaths bool
	// RunID tags the summary; one is generated when empty.
	RunID string
}

// Track pairs a request with the paths it resolved to.
type Track struct {
	Request songs.Request
	Paths   resolve.Paths
}

// Summary reports a completed build.
type Summary struct {
	RunID        string
	Format       string
	LibraryDir   string
	OutputPath   string
	Tracks       []Track
	CacheEntries int
	Elapsed      time.Duration
}

// Builder wires the resolver to playlist output.
type Builder struct {
	cfg      *config.Config
	lister   library.Lister
	prompter resolve.Prompter
	out      io.Writer
	logger   *slog.Logger
}

// NewBuilder constructs a Builder. Prompts go through prompter; a playlist
// printed instead of written goes to out.
func NewBuilder(cfg *config.Config, lister library.Lister, prompter resolve.Prompter, out io.Writer, logger *slog.Logger) (*Builder, error) {
	if cfg == nil || prompter == nil || out == nil {
		return nil, errors.New("builder requires config, prompter, and output writer")
	}
	if lister == nil {
		lister = library.FS{}
	}
	return &Builder{
		cfg:      cfg,
		lister:   lister,
		prompter: prompter,
		out:      out,
		logger:   logging.NewComponentLogger(logger, "assemble"),
	}, nil
}

// Run performs the build described by opts.
func (b *Builder) Run(ctx context.Context, opts Options) (Summary, error) {
	started := time.Now()
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	logger := b.logger

	requests, err := readRequests(opts.InputPath)
	if err != nil {
		return Summary{}, err
	}
	libraryDir := opts.LibraryDir
	if libraryDir == "" {
		libraryDir = b.cfg.Paths.LibraryDir
	}
	if !library.IsDir(libraryDir) {
		return Summary{}, fmt.Errorf("%w: %s", ErrLibraryNotFound, libraryDir)
	}
	if err := library.CheckRoot(libraryDir); err != nil {
		return Summary{}, err
	}
	format := selectFormat(opts.Format, opts.OutputPath, b.cfg.Playlist.Format)

	logger.Info("build started",
		logging.String("input", opts.InputPath),
		logging.String("library", libraryDir),
		logging.Int("songs", len(requests)),
		logging.String("format", format),
	)

	resolver, err := resolve.New(b.cfg, b.lister, b.prompter, logger)
	if err != nil {
		return Summary{}, err
	}
	cache := resolve.NewCache()
	tracks := make([]Track, 0, len(requests))
	for i, req := range requests {
		paths, err := resolver.ResolveSong(ctx, req, libraryDir, cache)
		if err != nil {
			if errors.Is(err, resolve.ErrAborted) {
				logging.WarnWithContext(logger, "build aborted", "build_aborted",
					logging.Int("song_index", i+1),
					logging.String("song", req.String()),
					logging.String(logging.FieldImpact, "no playlist written"),
					logging.String(logging.FieldErrorHint, "rerun the build and choose a candidate or enter a path"),
				)
			} else {
				logging.ErrorWithContext(logger, "build failed", "build_failed",
					logging.Int("song_index", i+1),
					logging.String("song", req.String()),
					logging.Error(err),
				)
			}
			return Summary{}, fmt.Errorf("song %d (%s): %w", i+1, req, err)
		}
		tracks = append(tracks, Track{Request: req, Paths: paths})
	}

	content, err := playlist.Render(format, entriesFor(tracks), renderOptions(opts))
	if err != nil {
		return Summary{}, err
	}
	if opts.OutputPath == "" {
		fmt.Fprintf(b.out, "\n%s\n%s", OutputBanner, content)
	} else if err := writeLocked(opts.OutputPath, content); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		RunID:        opts.RunID,
		Format:       format,
		LibraryDir:   libraryDir,
		OutputPath:   opts.OutputPath,
		Tracks:       tracks,
		CacheEntries: cache.Len(),
		Elapsed:      time.Since(started),
	}
	logger.Info("build completed",
		logging.Int("tracks", len(tracks)),
		logging.Int("cache_entries", summary.CacheEntries),
		logging.String("output", opts.OutputPath),
		logging.Any("elapsed", summary.Elapsed.Round(time.Millisecond)),
	)
	return summary, nil
}

func readRequests(path string) ([]songs.Request, error) {
	if !library.IsFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	requests, err := songs.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return requests, nil
}

func selectFormat(explicit, outputPath, configured string) string {
	if f := strings.ToLower(strings.TrimSpace(explicit)); f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".pls":
		return playlist.FormatPLS
	case ".m3u", ".m3u8":
		return playlist.FormatM3U
	}
	if configured != "" {
		return configured
	}
	return playlist.FormatM3U
}

func renderOptions(opts Options) playlist.Options {
	if !opts.RelativePaths || opts.OutputPath == "" {
		return playlist.Options{}
	}
	return playlist.Options{RelativeTo: filepath.Dir(opts.OutputPath)}
}

func entriesFor(tracks []Track) []playlist.Entry {
	entries := make([]playlist.Entry, 0, len(tracks))
	for _, track := range tracks {
		entries = append(entries, playlist.Entry{
			Path:    track.Paths.TrackFile,
			Title:   track.Request.Name,
			Artist:  track.Request.Artist,
			Album:   track.Request.Album,
			Seconds: track.Request.Seconds(),
		})
	}
	return entries
}

// writeLocked writes the playlist while holding the advisory lock next to it.
// The lock file is left in place so a waiting build never locks a stale inode.
func writeLocked(outputPath, content string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	lock := flock.New(outputPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutputLocked, outputPath)
	}
	defer func() { _ = lock.Unlock() }()

	return playlist.WriteFile(outputPath, content)
}
