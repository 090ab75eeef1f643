package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never searched for input batches.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	".jsonmapper",
	".venv",
	".idea",
	".vscode",
}

// inExcludedDir reports whether any directory segment of relPath is a
// default exclusion.
func inExcludedDir(relPath string) bool {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	for _, dir := range parts[:len(parts)-1] {
		for _, excl := range DefaultExcludes {
			if strings.EqualFold(dir, excl) {
				return true
			}
		}
	}
	return false
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support and also tries the bare file name.
func matchesAny(relPath string, patterns []string) bool {
	// Normalize to forward slashes for consistent matching.
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}

		base := filepath.Base(normalized)
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// hasMeta reports whether pattern contains glob syntax.
func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
