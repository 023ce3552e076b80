package history

import (
	"path"
	"strings"
)

// DefaultNoisePatterns matches files whose diffs drown out meaningful code
// changes: lockfiles, vendored dependencies, build output, generated and
// minified sources, and binary assets.
var DefaultNoisePatterns = []string{
	// Dependencies and build output
	"node_modules/**", "vendor/**", "third_party/**",
	"target/**", "build/**", "dist/**",

	// Lockfiles and checksums
	"go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"poetry.lock", "Cargo.lock", "Gemfile.lock", "composer.lock",

	// Generated or minified
	"*.min.js", "*.min.css", "*.map", "*.pb.go", "*_generated.go",

	// Binary assets
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.svg", "*.pdf",
	"*.woff", "*.woff2", "*.ttf", "*.zip", "*.gz", "*.jar",
}

// FileFilter decides which files of a patch are kept.
type FileFilter struct {
	patterns []string
}

// NewFileFilter creates a filter with DefaultNoisePatterns.
func NewFileFilter() *FileFilter {
	return NewFileFilterWithPatterns(DefaultNoisePatterns)
}

// NewFileFilterWithPatterns creates a filter with custom patterns.
//
// A pattern ending in "/**" matches a directory of that name at any depth.
// Other patterns are globs matched against the base name, or against the
// whole path when they contain a slash.
func NewFileFilterWithPatterns(patterns []string) *FileFilter {
	return &FileFilter{patterns: patterns}
}

// ShouldExclude reports whether the repository-relative path p matches a
// pattern. A nil filter excludes nothing.
func (f *FileFilter) ShouldExclude(p string) bool {
	if f == nil || p == "" {
		return false
	}
	p = strings.TrimPrefix(p, "./")
	for _, pattern := range f.patterns {
		if matchNoisePattern(pattern, p) {
			return true
		}
	}
	return false
}

func matchNoisePattern(pattern, p string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		parts := strings.Split(p, "/")
		// The last component is the file itself.
		for _, part := range parts[:len(parts)-1] {
			if part == dir {
				return true
			}
		}
		return false
	}

	name := p
	if !strings.Contains(pattern, "/") {
		name = path.Base(p)
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(strings.ToLower(name), strings.ToLower(pattern[1:]))
	}
	matched, _ := path.Match(pattern, name)
	return matched
}
