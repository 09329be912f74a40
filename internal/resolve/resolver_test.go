package resolve_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"setlist/internal/config"
	"setlist/internal/library"
	"setlist/internal/logging"
	"setlist/internal/resolve"
	"setlist/internal/songs"
	"setlist/internal/testsupport"
)

type countingLister struct {
	library.FS
	dirCalls  map[string]int
	fileCalls int
}

func newCountingLister() *countingLister {
	return &countingLister{dirCalls: map[string]int{}}
}

func (l *countingLister) ListSubdirectories(path string) ([]string, error) {
	l.dirCalls[path]++
	return l.FS.ListSubdirectories(path)
}

func (l *countingLister) ListMediaFiles(path string, exts []string) ([]string, error) {
	l.fileCalls++
	return l.FS.ListMediaFiles(path, exts)
}

func newResolver(t *testing.T, cfg *config.Config, lister library.Lister, p *testsupport.Prompter) *resolve.Resolver {
	t.Helper()
	r, err := resolve.New(cfg, lister, p, logging.NewNop())
	if err != nil {
		t.Fatalf("resolve.New: %v", err)
	}
	return r
}

func song(name, artist, album string) songs.Request {
	return songs.Request{Name: name, Artist: artist, Album: album, Duration: 4*time.Minute + 52*time.Second}
}

func TestResolveSongEndToEndPromptsOnceForArtist(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks(
		"AC-DC/The Razors Edge/05 Thunderstruck.m4a",
		"AC-DC/The Razors Edge/06 Moneytalks.m4a",
	))
	root := cfg.Paths.LibraryDir
	p := testsupport.NewPrompter("y")
	r := newResolver(t, cfg, library.FS{}, p)

	paths, err := r.ResolveSong(context.Background(), song("Thunderstruck", "AC/DC", "The Razors Edge"), root, resolve.NewCache())
	if err != nil {
		t.Fatalf("ResolveSong: %v", err)
	}

	want := resolve.Paths{
		ArtistDir: filepath.Join(root, "AC-DC"),
		AlbumDir:  filepath.Join(root, "AC-DC", "The Razors Edge"),
		TrackFile: filepath.Join(root, "AC-DC", "The Razors Edge", "05 Thunderstruck.m4a"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
	if len(p.Prompts) != 1 {
		t.Fatalf("expected exactly one prompt, got %v", p.Prompts)
	}
	if !p.Shown("Artist: AC/DC no exact match found!") || !p.Shown("AC-DC (80%)") {
		t.Fatalf("expected artist disambiguation, got %v", p.Messages)
	}
}

func TestExactMatchesNeverPrompt(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks(
		"Queen/A Night at the Opera/11 Bohemian Rhapsody.mp3",
		"Queensryche/Empire/03 Jet City Woman.mp3",
		"Queen II/Queen II/01 Procession.mp3",
	))
	p := testsupport.NewPrompter()
	r := newResolver(t, cfg, library.FS{}, p)

	paths, err := r.ResolveSong(context.Background(), song("Bohemian Rhapsody", "Queen", "A Night at the Opera"), cfg.Paths.LibraryDir, resolve.NewCache())
	if err != nil {
		t.Fatalf("ResolveSong: %v", err)
	}
	if want := filepath.Join(cfg.Paths.LibraryDir, "Queen", "A Night at the Opera", "11 Bohemian Rhapsody.mp3"); paths.TrackFile != want {
		t.Fatalf("expected %s, got %s", want, paths.TrackFile)
	}
	if len(p.Prompts) != 0 {
		t.Fatalf("expected no prompts, got %v", p.Prompts)
	}
}

func TestDotPrefixedNamesMatchExactly(t *testing.T) {
	tests := []struct {
		name  string
		track string
		song  songs.Request
	}{
		{
			name:  "album",
			track: "Metallica/...And Justice for All/01 Blackened.mp3",
			song:  song("Blackened", "Metallica", "...And Justice for All"),
		},
		{
			name:  "artist",
			track: "...And You Will Know Us by the Trail of Dead/Source Tags & Codes/05 Relative Ways.mp3",
			song:  song("Relative Ways", "...And You Will Know Us by the Trail of Dead", "Source Tags & Codes"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithTracks(tt.track))
			p := testsupport.NewPrompter()
			r := newResolver(t, cfg, library.FS{}, p)

			paths, err := r.ResolveSong(context.Background(), tt.song, cfg.Paths.LibraryDir, resolve.NewCache())
			if err != nil {
				t.Fatalf("ResolveSong: %v", err)
			}
			if want := filepath.Join(cfg.Paths.LibraryDir, filepath.FromSlash(tt.track)); paths.TrackFile != want {
				t.Fatalf("expected %s, got %s", want, paths.TrackFile)
			}
			if len(p.Prompts) != 0 {
				t.Fatalf("expected no prompts, got %v", p.Prompts)
			}
		})
	}
}

func TestTrackNumberIsStrippedBeforeMatching(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks(
		"AC-DC/Back In Black/06 Back In Black.mp3",
		"AC-DC/Back In Black/07 Back In Black (Live).mp3",
		"AC-DC/Back In Black/Back In Black.txt",
	))
	albumDir := filepath.Join(cfg.Paths.LibraryDir, "AC-DC", "Back In Black")
	p := testsupport.NewPrompter()
	r := newResolver(t, cfg, library.FS{}, p)

	got, err := r.ResolveTrack(context.Background(), song("Back In Black", "AC-DC", "Back In Black"), albumDir)
	if err != nil {
		t.Fatalf("ResolveTrack: %v", err)
	}
	if want := filepath.Join(albumDir, "06 Back In Black.mp3"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if len(p.Prompts) != 0 {
		t.Fatalf("expected no prompts, got %v", p.Prompts)
	}
}

func TestTrackTitle(t *testing.T) {
	tests := map[string]string{
		"/lib/a/07 Back In Black.mp3":   "Back In Black",
		"/lib/a/1 Intro.m4a":            "Intro",
		"/lib/a/1000 Cranes.mp3":        "1000 Cranes",
		"/lib/a/Thunderstruck.m4a":      "Thunderstruck",
		"/lib/a/05 1999.mp3":            "1999",
		"/lib/a/Song 2.mp3":             "Song 2",
		"/lib/a/03 Dont Stop Me 07.m4a": "Dont Stop Me 07",
	}
	for path, want := range tests {
		if got := resolve.TrackTitle(path); got != want {
			t.Errorf("TrackTitle(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestCacheSkipsArtistStageForRepeatedArtist(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks(
		"AC-DC/Back In Black/02 Shoot to Thrill.mp3",
		"AC-DC/The Razors Edge/05 Thunderstruck.m4a",
	))
	root := cfg.Paths.LibraryDir
	lister := newCountingLister()
	p := testsupport.NewPrompter("y")
	r := newResolver(t, cfg, lister, p)
	cache := resolve.NewCache()

	for _, req := range []songs.Request{
		song("Shoot to Thrill", "AC/DC", "Back In Black"),
		song("Thunderstruck", "AC/DC", "The Razors Edge"),
		song("Shoot to Thrill", "AC/DC", "Back In Black"),
	} {
		if _, err := r.ResolveSong(context.Background(), req, root, cache); err != nil {
			t.Fatalf("ResolveSong(%s): %v", req, err)
		}
	}

	if lister.dirCalls[root] != 1 {
		t.Fatalf("expected artist stage to list the library once, got %d", lister.dirCalls[root])
	}
	if lister.dirCalls[filepath.Join(root, "AC-DC")] != 2 {
		t.Fatalf("expected one album listing per distinct album, got %d", lister.dirCalls[filepath.Join(root, "AC-DC")])
	}
	if lister.fileCalls != 3 {
		t.Fatalf("expected tracks to be listed for every song, got %d", lister.fileCalls)
	}
	if len(p.Prompts) != 1 {
		t.Fatalf("expected a single artist prompt, got %v", p.Prompts)
	}
	if cache.Len() != 3 {
		t.Fatalf("expected 1 artist + 2 album entries, got %d", cache.Len())
	}
}

func TestAbortWithoutCandidates(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks("Metallica/Master of Puppets/01 Battery.mp3"))
	p := testsupport.NewPrompter("a")
	r := newResolver(t, cfg, library.FS{}, p)

	_, err := r.ResolveSong(context.Background(), song("Thunderstruck", "AC/DC", "The Razors Edge"), cfg.Paths.LibraryDir, resolve.NewCache())
	if !errors.Is(err, resolve.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !p.Shown("Artist: AC/DC no exact match found!") {
		t.Fatalf("expected failure banner, got %v", p.Messages)
	}
}

func TestRetryQueryRelistsAndCachesUnderRequestedName(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks("AC-DC/Powerage/01 Rock n Roll Damnation.mp3"))
	root := cfg.Paths.LibraryDir
	lister := newCountingLister()
	p := testsupport.NewPrompter("r", "AC-DC")
	r := newResolver(t, cfg, lister, p)
	cache := resolve.NewCache()

	dir, err := r.ResolveArtist(context.Background(), "Bon Scott era", root, cache)
	if err != nil {
		t.Fatalf("ResolveArtist: %v", err)
	}
	if want := filepath.Join(root, "AC-DC"); dir != want {
		t.Fatalf("expected %s, got %s", want, dir)
	}
	if lister.dirCalls[root] != 2 {
		t.Fatalf("expected the retry to list again, got %d listings", lister.dirCalls[root])
	}
	if cached, ok := cache.Artist("Bon Scott era"); !ok || cached != dir {
		t.Fatalf("expected cache keyed by requested name, got %q %v", cached, ok)
	}
	if _, ok := cache.Artist("AC-DC"); ok {
		t.Fatal("expected retry query not to become a cache key")
	}
}

func TestManualTrackPathOutsideAlbumIsReturnedUnchanged(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks("AC-DC/The Razors Edge/06 Moneytalks.m4a"))
	outside := filepath.Join(testsupport.BaseDir(cfg), "downloads", "thunder.mp3")
	testsupport.WriteFile(t, outside, 8)
	p := testsupport.NewPrompter("m", outside)
	r := newResolver(t, cfg, library.FS{}, p)

	paths, err := r.ResolveSong(context.Background(), song("Thunderstruck", "AC-DC", "The Razors Edge"), cfg.Paths.LibraryDir, resolve.NewCache())
	if err != nil {
		t.Fatalf("ResolveSong: %v", err)
	}
	if paths.TrackFile != outside {
		t.Fatalf("expected manual path %s, got %s", outside, paths.TrackFile)
	}
	if !p.Shown("Song: Thunderstruck - The Razors Edge - AC-DC no exact match found!") {
		t.Fatalf("expected song banner, got %v", p.Messages)
	}
}

func TestManualAlbumPathIsCached(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks(
		"AC-DC/Misc/01 Thunderstruck.m4a",
		"AC-DC/Misc/02 Hells Bells.m4a",
	))
	manual := filepath.Join(cfg.Paths.LibraryDir, "AC-DC", "Misc")
	p := testsupport.NewPrompter("m", manual)
	r := newResolver(t, cfg, library.FS{}, p)
	cache := resolve.NewCache()

	for _, name := range []string{"Thunderstruck", "Hells Bells"} {
		if _, err := r.ResolveSong(context.Background(), song(name, "AC-DC", "Live at Donington"), cfg.Paths.LibraryDir, cache); err != nil {
			t.Fatalf("ResolveSong(%s): %v", name, err)
		}
	}
	if dir, ok := cache.Album("AC-DC", "Live at Donington"); !ok || dir != manual {
		t.Fatalf("expected manual album path cached, got %q %v", dir, ok)
	}
	if len(p.Prompts) != 2 {
		t.Fatalf("expected prompts only for the first song, got %v", p.Prompts)
	}
}

func TestVanishedAlbumDirectoryIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks("AC-DC/Powerage/01 Riff Raff.mp3"))
	root := cfg.Paths.LibraryDir
	cache := resolve.NewCache()
	cache.StoreArtist("AC-DC", filepath.Join(root, "AC-DC"))
	if err := os.RemoveAll(filepath.Join(root, "AC-DC")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	p := testsupport.NewPrompter()
	r := newResolver(t, cfg, library.FS{}, p)

	_, err := r.ResolveSong(context.Background(), song("Riff Raff", "AC-DC", "Powerage"), root, cache)
	if !errors.Is(err, resolve.ErrFilesystemUnavailable) {
		t.Fatalf("expected ErrFilesystemUnavailable, got %v", err)
	}
	if len(p.Prompts) != 0 {
		t.Fatalf("expected no prompts, got %v", p.Prompts)
	}
}

func TestCancelledContextStopsResolution(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTracks("AC-DC/Powerage/01 Riff Raff.mp3"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newResolver(t, cfg, library.FS{}, testsupport.NewPrompter())

	_, err := r.ResolveSong(ctx, song("Riff Raff", "AC-DC", "Powerage"), cfg.Paths.LibraryDir, resolve.NewCache())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Matching.Algorithm = "soundex"
	if _, err := resolve.New(cfg, nil, testsupport.NewPrompter(), nil); err == nil {
		t.Fatal("expected unknown algorithm error")
	}
}
