package domain

import (
	"strconv"
	"strings"
	"time"
)

// Issue is an item from the issue tracker.
type Issue struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Number    uint64    `json:"number"`
}

// String renders the issue one field per line.
func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString(i.Title)
	sb.WriteString("\n")
	sb.WriteString(i.Body)
	sb.WriteString("\n")
	sb.WriteString(i.Author.Name)
	sb.WriteString("\n")
	sb.WriteString(i.CreatedAt.Format(time.RFC3339))
	sb.WriteString("\n")
	sb.WriteString(strconv.FormatUint(i.Number, 10))
	sb.WriteString("\n")
	return sb.String()
}
