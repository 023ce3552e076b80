// Package history fetches commit history from git and decodes it into
// domain commits.
//
// A fetch runs a single `git log` whose output interleaves per-commit
// metadata fields, joined by Delimiter, with the commit's unified diff.
// Commits are separated by NUL bytes. The parser separates the metadata from
// the diff line by line before either is interpreted, so diff content that
// happens to contain the delimiter never corrupts the metadata.
package history
