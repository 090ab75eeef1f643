package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FileInfo describes one input batch.
type FileInfo struct {
	Path    string // Path on disk.
	RelPath string // Path relative to the pattern's static base directory.
	Size    int64  // File size in bytes.
}

// Config controls the behaviour of Walk.
type Config struct {
	// Patterns are file paths, directories or doublestar globs. A
	// directory stands for every .json file below it.
	Patterns []string
	// Exclude drops files whose relative path or name matches.
	Exclude []string
}

// Walk expands the configured patterns into input files. Results keep
// pattern order and are sorted within a pattern; a file matched by several
// patterns is listed once.
func Walk(config Config) ([]FileInfo, error) {
	var files []FileInfo
	seen := make(map[string]bool)

	add := func(path, rel string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("walker: resolve %s: %w", path, err)
		}
		if seen[abs] || inExcludedDir(rel) || MatchesExclude(rel, config.Exclude) {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("walker: %w", err)
		}
		seen[abs] = true
		files = append(files, FileInfo{Path: path, RelPath: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	}

	for _, pattern := range config.Patterns {
		if !hasMeta(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("walker: %w", err)
			}
			if !info.IsDir() {
				if err := add(pattern, filepath.Base(pattern)); err != nil {
					return nil, err
				}
				continue
			}
			pattern = filepath.Join(pattern, "**", "*.json")
		}

		base, glob := doublestar.SplitPattern(filepath.ToSlash(pattern))
		matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("walker: expand %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, rel := range matches {
			if err := add(filepath.Join(filepath.FromSlash(base), filepath.FromSlash(rel)), rel); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

// OutputPath places an input's result under outDir, mirroring its
// relative path.
func OutputPath(outDir string, f FileInfo) string {
	return filepath.Join(outDir, filepath.FromSlash(f.RelPath))
}
