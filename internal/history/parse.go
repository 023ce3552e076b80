package history

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/sha1n/gitm/internal/domain"
)

const (
	// Delimiter joins the metadata fields of a commit.
	Delimiter = "|||"

	// RecordSeparator separates commits in the log stream.
	RecordSeparator = "\x00"

	diffMarker = "diff --git"
)

// logFields are the git pretty-format placeholders requested for each
// commit: author name, author email, RFC 2822 date, subject, body and hash.
var logFields = []string{"%an", "%ae", "%aD", "%s", "%b", "%H"}

// ErrBadDate indicates a commit date that could not be parsed. It fails the
// whole fetch rather than a single commit.
var ErrBadDate = errors.New("invalid commit date")

// LogFormat returns the --pretty format string matching the parser.
func LogFormat() string {
	return "--pretty=format:" + strings.Join(logFields, Delimiter)
}

// SplitRecord separates one commit blob into its diff fragments and its
// metadata text.
//
// Every line starting with "diff --git" opens a new fragment. Lines before
// the first marker are metadata; all lines after it belong to a fragment.
func SplitRecord(blob string) (fragments []string, metadata string) {
	var current, meta []string
	inDiff := false

	for _, line := range strings.Split(blob, "\n") {
		if strings.HasPrefix(line, diffMarker) {
			if inDiff && len(current) > 0 {
				fragments = append(fragments, strings.Join(current, "\n"))
				current = nil
			}
			inDiff = true
		}
		if inDiff {
			current = append(current, line)
		} else {
			meta = append(meta, line)
		}
	}
	if len(current) > 0 {
		fragments = append(fragments, strings.Join(current, "\n"))
	}

	return fragments, strings.Join(meta, "\n")
}

// Parser decodes log stream records into commits.
type Parser struct {
	files *FileFilter
	log   *slog.Logger
}

// NewParser creates a parser. Files matched by files are left out of every
// parsed patch; a nil filter keeps all files.
func NewParser(files *FileFilter) *Parser {
	return &Parser{files: files, log: slog.Default()}
}

// ParseLog decodes the full output of a history fetch. Commits rejected by
// filter are discarded while parsing. The result is oldest first.
func (p *Parser) ParseLog(out string, filter *domain.FilterConfig) ([]domain.Commit, error) {
	var commits []domain.Commit
	dropped := 0

	for _, blob := range strings.Split(out, RecordSeparator) {
		if strings.TrimSpace(blob) == "" {
			continue
		}
		commit, ok, err := p.ParseRecord(blob)
		if err != nil {
			return nil, err
		}
		if !ok {
			dropped++
			continue
		}
		if Keep(commit, filter) {
			commits = append(commits, commit)
		}
	}

	if dropped > 0 {
		p.log.Debug("Dropped malformed history records", "count", dropped)
	}

	// git emits newest first.
	slices.Reverse(commits)
	return commits, nil
}

// ParseRecord decodes a single commit blob. ok is false when the metadata
// does not have the expected number of fields; such records are skipped by
// callers. An unparseable date is an error.
func (p *Parser) ParseRecord(blob string) (commit domain.Commit, ok bool, err error) {
	fragments, metadata := SplitRecord(blob)

	fields := strings.Split(strings.TrimLeft(metadata, "\n"), Delimiter)
	if len(fields) != len(logFields) {
		return domain.Commit{}, false, nil
	}

	rawDate := strings.TrimSpace(fields[2])
	date, err := mail.ParseDate(rawDate)
	if err != nil {
		return domain.Commit{}, false, fmt.Errorf("%w %q: %v", ErrBadDate, rawDate, err)
	}

	return domain.Commit{
		Author: domain.Author{
			Name:  strings.TrimSpace(fields[0]),
			Email: strings.TrimSpace(fields[1]),
		},
		Date:  date.UTC(),
		Title: strings.TrimSpace(fields[3]),
		Body:  strings.TrimSpace(fields[4]),
		Hash:  strings.TrimSpace(fields[5]),
		Patch: p.parsePatch(fragments),
	}, true, nil
}

func (p *Parser) parsePatch(fragments []string) domain.PatchSet {
	if len(fragments) == 0 {
		return domain.PatchSet{}
	}

	text := strings.TrimRight(strings.Join(fragments, "\n"), "\n") + "\n"
	files, _, err := gitdiff.Parse(strings.NewReader(text))
	if err != nil {
		// Keep whatever parsed before the error.
		p.log.Debug("Failed to parse patch", "error", err, "parsed_files", len(files))
	}

	var patch domain.PatchSet
	for _, f := range files {
		fd := domain.FileDiff{
			OldName: f.OldName,
			NewName: f.NewName,
			Binary:  f.IsBinary,
		}
		if p.files.ShouldExclude(fd.Path()) {
			continue
		}
		for _, frag := range f.TextFragments {
			fd.Hunks = append(fd.Hunks, convertFragment(frag))
		}
		patch.Files = append(patch.Files, fd)
	}
	return patch
}

func convertFragment(frag *gitdiff.TextFragment) domain.Hunk {
	h := domain.Hunk{
		OldStart: frag.OldPosition,
		OldLines: frag.OldLines,
		NewStart: frag.NewPosition,
		NewLines: frag.NewLines,
		Header:   frag.Comment,
		Lines:    make([]domain.Line, 0, len(frag.Lines)),
	}
	for _, l := range frag.Lines {
		kind := domain.LineContext
		switch l.Op {
		case gitdiff.OpAdd:
			kind = domain.LineAdded
		case gitdiff.OpDelete:
			kind = domain.LineRemoved
		}
		h.Lines = append(h.Lines, domain.Line{
			Kind: kind,
			Text: strings.TrimSuffix(l.Line, "\n"),
		})
	}
	return h
}
