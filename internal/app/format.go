package app

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sha1n/gitm/internal/config"
	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/search"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiGrey   = "\x1b[90m"
)

const (
	indentWidth = 4
	dateLayout  = "2006-01-02 15:04"
)

// Formatter renders search results for a terminal.
type Formatter struct {
	w     io.Writer
	color bool
}

// NewFormatter creates a Formatter writing to w.
func NewFormatter(w io.Writer, color bool) *Formatter {
	return &Formatter{w: w, color: color}
}

// ColorEnabled resolves a color mode for w. In auto mode color is used when w
// is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write renders results.
func (f *Formatter) Write(results *search.Results) error {
	var sb strings.Builder

	if len(results.Commits) == 0 && len(results.Issues) == 0 {
		sb.WriteString("No results found.\n")
		_, err := io.WriteString(f.w, sb.String())
		return err
	}

	if results.Filter.HasPredicates() {
		sb.WriteString(f.paint(ansiGrey, filterLine(results.Filter)))
		sb.WriteString("\n\n")
	}

	headers := len(results.Commits) > 0 && len(results.Issues) > 0
	if len(results.Commits) > 0 {
		if headers {
			sb.WriteString(f.paint(ansiBold, "Commits"))
			sb.WriteString("\n\n")
		}
		for _, c := range results.Commits {
			f.writeCommit(&sb, c)
		}
	}
	if len(results.Issues) > 0 {
		if headers {
			sb.WriteString(f.paint(ansiBold, "Issues"))
			sb.WriteString("\n\n")
		}
		for _, issue := range results.Issues {
			f.writeIssue(&sb, issue)
		}
	}

	_, err := io.WriteString(f.w, sb.String())
	return err
}

func (f *Formatter) writeCommit(sb *strings.Builder, c domain.Commit) {
	sb.WriteString(f.paint(ansiYellow, c.ShortHash()))
	sb.WriteString(" ")
	sb.WriteString(f.paint(ansiCyan, c.Author.Name))
	sb.WriteString(" ")
	sb.WriteString(f.paint(ansiGrey, c.Date.UTC().Format(dateLayout)))
	sb.WriteString("\n")
	sb.WriteString(indent(c.Title, indentWidth))
	if body := strings.TrimSpace(c.Body); body != "" {
		sb.WriteString("\n")
		sb.WriteString(indent(body, indentWidth))
	}
	sb.WriteString("\n")
}

func (f *Formatter) writeIssue(sb *strings.Builder, issue domain.Issue) {
	sb.WriteString(f.paint(ansiGreen, "#"+strconv.FormatUint(issue.Number, 10)))
	sb.WriteString(" ")
	sb.WriteString(f.paint(ansiCyan, issue.Author.Name))
	sb.WriteString(" ")
	sb.WriteString(f.paint(ansiGrey, issue.CreatedAt.UTC().Format(dateLayout)))
	sb.WriteString("\n")
	sb.WriteString(indent(issue.Title, indentWidth))
	sb.WriteString("\n")
}

func (f *Formatter) paint(code, s string) string {
	if !f.color || s == "" {
		return s
	}
	return code + s + ansiReset
}

func filterLine(filter *domain.FilterConfig) string {
	parts := []string{"Filters:"}
	if filter.Author != nil {
		parts = append(parts, "author="+filter.Author.Name)
	}
	if filter.Dates != nil {
		parts = append(parts, "since="+formatBound(filter.Dates.Since), "until="+formatBound(filter.Dates.Until))
	}
	return strings.Join(parts, " ")
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.UTC().Format("2006-01-02")
}

// indent prefixes every line of s with width spaces. Each line, including the
// last, ends with a newline.
func indent(s string, width int) string {
	pad := strings.Repeat(" ", width)
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line != "" {
			sb.WriteString(pad)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
