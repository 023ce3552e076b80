package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisplayMode selects how a Commit renders to text. It changes what gets
// tokenized and shown, never the identity of the commit.
type DisplayMode uint8

const (
	DisplayTitleAndBody DisplayMode = iota
	DisplayTitle
	DisplayBody
	DisplayPatchAdded
	DisplayPatchRemoved
	DisplayPatchAll
)

var displayModeNames = map[DisplayMode]string{
	DisplayTitleAndBody: "title_and_body",
	DisplayTitle:        "title",
	DisplayBody:         "body",
	DisplayPatchAdded:   "patch_added",
	DisplayPatchRemoved: "patch_removed",
	DisplayPatchAll:     "patch_all",
}

func (m DisplayMode) String() string {
	if name, ok := displayModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("display_mode(%d)", uint8(m))
}

// Commit is one record parsed from the history stream.
// Hash is unique within one fetch and stable across fetches.
type Commit struct {
	Author  Author      `json:"author"`
	Date    time.Time   `json:"date"`
	Title   string      `json:"title"`
	Body    string      `json:"body"`
	Hash    string      `json:"hash"`
	Patch   PatchSet    `json:"patch"`
	Display DisplayMode `json:"-"`
}

// WithDisplay returns a copy of c rendering in mode m.
func (c Commit) WithDisplay(m DisplayMode) Commit {
	c.Display = m
	return c
}

// ShortHash returns the abbreviated hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// String renders the commit according to its display mode.
func (c Commit) String() string {
	switch c.Display {
	case DisplayTitle:
		return c.Title
	case DisplayBody:
		return c.Body
	case DisplayPatchAdded:
		return strings.Join(c.Patch.Lines(LineAdded), "\n")
	case DisplayPatchRemoved:
		return strings.Join(c.Patch.Lines(LineRemoved), "\n")
	case DisplayPatchAll:
		return c.Patch.Render()
	default:
		return c.Title + "\n\n" + c.Body
	}
}

// WithDisplayAll returns copies of commits rendering in mode m.
func WithDisplayAll(commits []Commit, m DisplayMode) []Commit {
	out := make([]Commit, len(commits))
	for i, c := range commits {
		out[i] = c.WithDisplay(m)
	}
	return out
}
