package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/llm"
)

const authorInstruction = "Determine if the user's query is trying to filter by the author."

// AuthorLister lists the known authors of a repository.
type AuthorLister interface {
	Authors(ctx context.Context) ([]domain.Author, error)
}

// Author detects queries that filter by commit author. The extracted name
// must match a known author exactly; any other name is a negative result.
type Author struct {
	chatter llm.Chatter
	lister  AuthorLister
}

// NewAuthor creates an author-mention classifier.
func NewAuthor(chatter llm.Chatter, lister AuthorLister) *Author {
	return &Author{chatter: chatter, lister: lister}
}

// Classify implements Classifier.
func (a *Author) Classify(ctx context.Context, query string) (Result[domain.Author], error) {
	authors, err := a.lister.Authors(ctx)
	if err != nil {
		return Negative[domain.Author](), fmt.Errorf("failed to list authors: %w", err)
	}
	known := domain.NewAuthorSet(authors...)

	var raw struct {
		Classification bool    `json:"classification"`
		AuthorName     *string `json:"author_name"`
	}
	if err := newAuthorBinary(a.chatter, known).Decode(ctx, query, &raw); err != nil {
		return Negative[domain.Author](), err
	}

	if !raw.Classification || raw.AuthorName == nil {
		return Negative[domain.Author](), nil
	}
	author := domain.Author{Name: *raw.AuthorName}
	if !known.Contains(author) {
		slog.Debug("Classified author is not a known author", "author", author.Name)
		return Negative[domain.Author](), nil
	}
	return Positive(author), nil
}

func newAuthorBinary(chatter llm.Chatter, known *domain.AuthorSet) *Binary {
	var names []string
	for _, author := range known.Authors() {
		if author.Name != "" {
			names = append(names, "- "+author.Name)
		}
	}

	info := "## Complete Author List\n" + strings.Join(names, "\n") +
		"\n\n*The author name must be an exact match to the author's name in the list above.*"

	return NewBinary(chatter, authorInstruction, info, Property{
		Name:        "author_name",
		Type:        "string",
		Description: "The name of the author that the user is trying to filter by",
	})
}
