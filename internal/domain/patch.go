package domain

import "strings"

// LineKind tags a line of a hunk.
type LineKind uint8

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Prefix returns the unified diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk, without its diff marker or trailing newline.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// Hunk is a contiguous block of changes within one file.
type Hunk struct {
	OldStart int64  `json:"old_start"`
	OldLines int64  `json:"old_lines"`
	NewStart int64  `json:"new_start"`
	NewLines int64  `json:"new_lines"`
	Header   string `json:"header,omitempty"`
	Lines    []Line `json:"lines"`
}

// FileDiff holds the hunks for a single file.
// OldName is empty for added files and NewName is empty for deleted files.
type FileDiff struct {
	OldName string `json:"old_name,omitempty"`
	NewName string `json:"new_name,omitempty"`
	Binary  bool   `json:"binary,omitempty"`
	Hunks   []Hunk `json:"hunks,omitempty"`
}

// Path returns the most relevant name of the file.
func (f FileDiff) Path() string {
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

// PatchSet is the parsed patch of one commit. It is built once when the
// commit is parsed and never modified afterwards.
type PatchSet struct {
	Files []FileDiff `json:"files,omitempty"`
}

// IsEmpty reports whether the patch has no files.
func (p PatchSet) IsEmpty() bool {
	return len(p.Files) == 0
}

// Lines returns the text of every line whose kind is in kinds, in patch order.
func (p PatchSet) Lines(kinds ...LineKind) []string {
	var out []string
	for _, f := range p.Files {
		for _, h := range f.Hunks {
			for _, l := range h.Lines {
				if hasKind(kinds, l.Kind) {
					out = append(out, l.Text)
				}
			}
		}
	}
	return out
}

// Render writes the whole patch back as marker-prefixed lines, one file
// header per file.
func (p PatchSet) Render() string {
	var sb strings.Builder
	for _, f := range p.Files {
		sb.WriteString("--- ")
		sb.WriteString(f.Path())
		sb.WriteString("\n")
		for _, h := range f.Hunks {
			for _, l := range h.Lines {
				sb.WriteString(l.Kind.Prefix())
				sb.WriteString(l.Text)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func hasKind(kinds []LineKind, k LineKind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
