package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/llm"
)

const (
	dateInstruction = "Determine if the user's query is trying to filter by the date."

	// DateLayout is the date format exchanged with the model.
	DateLayout = "2006-01-02"
)

// Date detects queries that filter by date and converts the extracted
// YYYY-MM-DD bounds to an inclusive UTC range. since starts at midnight and
// until ends at the last instant of its day.
type Date struct {
	chatter llm.Chatter
	now     func() time.Time
}

// NewDate creates a date-mention classifier. now supplies the current date
// given to the model; nil means time.Now.
func NewDate(chatter llm.Chatter, now func() time.Time) *Date {
	if now == nil {
		now = time.Now
	}
	return &Date{chatter: chatter, now: now}
}

// Classify implements Classifier.
func (d *Date) Classify(ctx context.Context, query string) (Result[domain.DateRange], error) {
	info := fmt.Sprintf("The date must be in the format YYYY-MM-DD.\n\nThe current datetime is: %s",
		d.now().Format(DateLayout))

	binary := NewBinary(d.chatter, dateInstruction, info,
		Property{Name: "since", Type: "string", Description: "The YYYY-MM-DD since date that the user is trying to filter by"},
		Property{Name: "until", Type: "string", Description: "The YYYY-MM-DD until date that the user is trying to filter by"},
	)

	var raw struct {
		Classification bool    `json:"classification"`
		Since          *string `json:"since"`
		Until          *string `json:"until"`
	}
	if err := binary.Decode(ctx, query, &raw); err != nil {
		return Negative[domain.DateRange](), err
	}
	if !raw.Classification {
		return Negative[domain.DateRange](), nil
	}

	r, err := ParseDateRange(raw.Since, raw.Until)
	if err != nil {
		return Negative[domain.DateRange](), err
	}
	if r.IsOpen() {
		return Negative[domain.DateRange](), nil
	}
	return Positive(r), nil
}

// ParseDateRange converts optional YYYY-MM-DD bounds to an inclusive UTC
// range. Nil or empty bounds stay open.
func ParseDateRange(since, until *string) (domain.DateRange, error) {
	var r domain.DateRange
	if since != nil && *since != "" {
		t, err := time.Parse(DateLayout, *since)
		if err != nil {
			return r, fmt.Errorf("invalid since date %q: %w", *since, err)
		}
		r.Since = t.UTC()
	}
	if until != nil && *until != "" {
		t, err := time.Parse(DateLayout, *until)
		if err != nil {
			return r, fmt.Errorf("invalid until date %q: %w", *until, err)
		}
		r.Until = t.UTC().AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !r.Since.IsZero() && !r.Until.IsZero() && r.Until.Before(r.Since) {
		return r, fmt.Errorf("since date %s is after until date %s", *since, *until)
	}
	return r, nil
}
