package vidstat

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// WalkResult holds the videos found under a root directory.
type WalkResult struct {
	// Paths are the matching files, sorted lexicographically.
	Paths []string
	// DirCount is the number of directories entered, including the root.
	DirCount int
}

// Walker enumerates video files below a root directory.
type Walker struct {
	// Extensions are the case-sensitive suffixes a file name must end with.
	Extensions []string
	// Excludes are regexes matched against slash-separated paths.
	Excludes []*regexp.Regexp
	// Depth limits traversal depth (0=unlimited).
	Depth int

	log logger
}

// NewWalker compiles the walk filters from opt.
func NewWalker(opt Options) (*Walker, error) {
	excludes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: compiling exclusion pattern %q: %w", ErrValidation, p, err)
		}

		excludes = append(excludes, re)
	}

	return &Walker{
		Extensions: opt.Extensions,
		Excludes:   excludes,
		Depth:      opt.Depth,
		log:        newLogger(opt.Debug),
	}, nil
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// hasExtension reports whether name ends with one of exts.
func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// Walk traverses the full tree below root and collects the matching files.
// Unreadable subdirectories are skipped; an inaccessible root is an ErrFilesystem.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *Walker) Walk(root string) (*WalkResult, error) {
	root = filepath.Clean(root)

	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: accessing path %q: %w", ErrFilesystem, root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: path %q is not a directory", ErrFilesystem, root)
	}

	dir, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("%w: opening directory %q: %w", ErrFilesystem, root, err)
	}

	dir.Close()

	var (
		mu       sync.Mutex // fastwalk calls back from multiple goroutines
		paths    []string
		dirCount = 1
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	err = fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.printf("error accessing path %s: %v", path, err)

			return nil // Silently skip errors
		}

		if filepath.Clean(path) == root {
			return nil
		}

		if w.Depth > 0 && calculateDepth(path, root) > w.Depth {
			if d.IsDir() {
				w.log.printf("skipping directory (beyond depth %d): %s", w.Depth, path)

				return filepath.SkipDir
			}

			return nil
		}

		if re := shouldExcludeByPattern(path, w.Excludes); re != nil {
			w.log.printf("excluding %s (matched regex %s)", filepath.ToSlash(path), re.String())

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			mu.Lock()
			dirCount++
			mu.Unlock()

			return nil
		}

		if !d.Type().IsRegular() || !hasExtension(d.Name(), w.Extensions) {
			return nil
		}

		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %q: %w", ErrFilesystem, root, err)
	}

	sort.Strings(paths)

	return &WalkResult{Paths: paths, DirCount: dirCount}, nil
}
