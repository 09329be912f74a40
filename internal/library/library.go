package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnavailable marks a library root or resolved directory that can no longer be read.
var ErrUnavailable = errors.New("filesystem unavailable")

// Lister enumerates resolution candidates.
type Lister interface {
	// ListSubdirectories returns the names of the directories directly under path.
	ListSubdirectories(path string) ([]string, error)
	// ListMediaFiles returns the paths of files directly under path whose
	// extension is in exts.
	ListMediaFiles(path string, exts []string) ([]string, error)
}

// FS lists candidates from the local filesystem in name order.
type FS struct{}

// ListSubdirectories implements Lister. Symlinks to directories count as
// directories. Dot-prefixed names are kept.
func (FS) ListSubdirectories(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrUnavailable, path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || (entry.Type()&os.ModeSymlink != 0 && isDir(filepath.Join(path, entry.Name()))) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ListMediaFiles implements Lister. Extensions match case-insensitively.
func (FS) ListMediaFiles(path string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrUnavailable, path, err)
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isJunk(entry.Name()) {
			continue
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	return files, nil
}

// CheckRoot verifies that root is a directory the current user can list.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: library %s: %w", ErrUnavailable, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: library %s is not a directory", ErrUnavailable, root)
	}
	if err := checkReadable(root); err != nil {
		return fmt.Errorf("%w: library %s: %w", ErrUnavailable, root, err)
	}
	return nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	return isDir(path)
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isJunk reports Finder metadata: .DS_Store and AppleDouble "._" companions.
// Other dot-prefixed names are real titles such as "...And Justice for All".
func isJunk(name string) bool {
	return name == ".DS_Store" || strings.HasPrefix(name, "._")
}
