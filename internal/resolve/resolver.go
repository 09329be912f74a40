package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"setlist/internal/config"
	"setlist/internal/library"
	"setlist/internal/logging"
	"setlist/internal/similarity"
	"setlist/internal/songs"
)

var trackNumberPattern = regexp.MustCompile(`^\d{1,3} `)

// TrackTitle returns the base name of path without its extension or a
// leading track number such as "07 ".
func TrackTitle(path string) string {
	base := filepath.Base(path)
	return trackNumberPattern.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "")
}

// Paths are the locations one song resolved to.
type Paths struct {
	ArtistDir string
	AlbumDir  string
	TrackFile string
}

// Resolver runs the artist, album, and track stages against a Lister.
type Resolver struct {
	lister        library.Lister
	engine        *Engine
	score         similarity.Func
	extensions    []string
	dirThreshold  float64
	fileThreshold float64
	logger        *slog.Logger
}

// New builds a Resolver from the matching and library settings in cfg.
func New(cfg *config.Config, lister library.Lister, prompter Prompter, logger *slog.Logger) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.New("resolver: config is required")
	}
	if lister == nil {
		lister = library.FS{}
	}
	score, err := similarity.ForAlgorithm(cfg.Matching.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}
	return &Resolver{
		lister:        lister,
		engine:        NewEngine(prompter, cfg.Matching.AutoAcceptScore, logger),
		score:         score,
		extensions:    append([]string(nil), cfg.Library.Extensions...),
		dirThreshold:  cfg.Matching.DirectoryThreshold,
		fileThreshold: cfg.Matching.FileThreshold,
		logger:        logging.NewComponentLogger(logger, "resolver"),
	}, nil
}

// ResolveSong resolves the artist, album, and track of song in order. Only
// ErrAborted, ErrFilesystemUnavailable, prompter failures, and context
// cancellation are returned.
func (r *Resolver) ResolveSong(ctx context.Context, song songs.Request, libraryRoot string, cache *Cache) (Paths, error) {
	artistDir, err := r.ResolveArtist(ctx, song.Artist, libraryRoot, cache)
	if err != nil {
		return Paths{}, err
	}
	albumDir, err := r.ResolveAlbum(ctx, song.Artist, song.Album, artistDir, cache)
	if err != nil {
		return Paths{}, err
	}
	trackFile, err := r.ResolveTrack(ctx, song, albumDir)
	if err != nil {
		return Paths{}, err
	}
	return Paths{ArtistDir: artistDir, AlbumDir: albumDir, TrackFile: trackFile}, nil
}

// ResolveArtist returns the directory under libraryRoot holding artist.
func (r *Resolver) ResolveArtist(ctx context.Context, artist, libraryRoot string, cache *Cache) (string, error) {
	ctx = logging.WithStage(ctx, string(StageArtist))
	logger := logging.WithContext(ctx, r.logger)
	if dir, ok := cache.Artist(artist); ok {
		logger.Debug("cache hit", logging.String("artist", artist), logging.String("path", dir))
		return dir, nil
	}
	dir, err := r.resolveDirectory(ctx, StageArtist, artist, libraryRoot, func(query string) string {
		return "Artist: " + query + " no exact match found!"
	})
	if err != nil {
		return "", err
	}
	cache.StoreArtist(artist, dir)
	return dir, nil
}

// ResolveAlbum returns the directory under artistDir holding album.
func (r *Resolver) ResolveAlbum(ctx context.Context, artist, album, artistDir string, cache *Cache) (string, error) {
	ctx = logging.WithStage(ctx, string(StageAlbum))
	logger := logging.WithContext(ctx, r.logger)
	if dir, ok := cache.Album(artist, album); ok {
		logger.Debug("cache hit", logging.String("album", album), logging.String("path", dir))
		return dir, nil
	}
	dir, err := r.resolveDirectory(ctx, StageAlbum, album, artistDir, func(query string) string {
		return "Album: " + query + " - " + artist + " no exact match found!\nSearched in: " + artistDir
	})
	if err != nil {
		return "", err
	}
	cache.StoreAlbum(artist, album, dir)
	return dir, nil
}

// ResolveTrack returns the media file under albumDir holding song. Track
// results are not cached.
func (r *Resolver) ResolveTrack(ctx context.Context, song songs.Request, albumDir string) (string, error) {
	ctx = logging.WithStage(ctx, string(StageTrack))
	logger := logging.WithContext(ctx, r.logger)
	query := song.Name
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		files, err := r.lister.ListMediaFiles(albumDir, r.extensions)
		if err != nil {
			return "", stageError(StageTrack, song.Name, err)
		}

		var candidates []Candidate
		for _, path := range files {
			title := TrackTitle(path)
			if title == query {
				logger.Info("track resolved", logging.String("method", "exact"), logging.String("path", path))
				return path, nil
			}
			if score := r.score(query, title); score > r.fileThreshold {
				candidates = append(candidates, Candidate{Name: title, Path: path, Score: score})
			}
		}

		banner := "Song: " + query + " - " + song.Album + " - " + song.Artist +
			" no exact match found!\nSearched in: " + albumDir
		path, retry, err := r.settle(ctx, logger, Attempt{Stage: StageTrack, Query: query, Banner: banner, Candidates: candidates}, song.Name)
		if err != nil {
			return "", err
		}
		if retry != "" {
			query = retry
			continue
		}
		return path, nil
	}
}

func (r *Resolver) resolveDirectory(ctx context.Context, stage Stage, requested, root string, banner func(query string) string) (string, error) {
	logger := logging.WithContext(ctx, r.logger)
	query := requested
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		names, err := r.lister.ListSubdirectories(root)
		if err != nil {
			return "", stageError(stage, requested, err)
		}

		var candidates []Candidate
		for _, name := range names {
			if name == query {
				path := filepath.Join(root, name)
				logger.Info(string(stage)+" resolved", logging.String("method", "exact"), logging.String("path", path))
				return path, nil
			}
			if score := r.score(query, name); score > r.dirThreshold {
				candidates = append(candidates, Candidate{Name: name, Path: filepath.Join(root, name), Score: score})
			}
		}

		path, retry, err := r.settle(ctx, logger, Attempt{Stage: stage, Query: query, Banner: banner(query), Candidates: candidates}, requested)
		if err != nil {
			return "", err
		}
		if retry != "" {
			query = retry
			continue
		}
		return path, nil
	}
}

// settle runs the engine once. It returns either a resolved path or a new
// query to list against.
func (r *Resolver) settle(ctx context.Context, logger *slog.Logger, attempt Attempt, requested string) (string, string, error) {
	outcome, err := r.engine.Disambiguate(ctx, attempt)
	if err != nil {
		return "", "", stageError(attempt.Stage, requested, err)
	}
	switch o := outcome.(type) {
	case Confirmed:
		logger.Info(string(attempt.Stage)+" resolved", logging.String("method", "confirmed"), logging.String("path", o.Candidate.Path))
		return o.Candidate.Path, "", nil
	case ManualPath:
		logger.Info(string(attempt.Stage)+" resolved", logging.String("method", "manual"), logging.String("path", o.Path))
		return o.Path, "", nil
	case RetryWithQuery:
		logger.Debug("retrying with new query", logging.String("query", o.Query))
		return "", o.Query, nil
	case Aborted:
		return "", "", stageError(attempt.Stage, requested, ErrAborted)
	default:
		panic(fmt.Sprintf("resolve: unhandled outcome %T", outcome))
	}
}
