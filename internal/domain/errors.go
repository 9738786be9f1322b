package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnrecognizedKeyword = errors.New("unrecognized keyword")
	ErrExtraction          = errors.New("keyword extraction failed")
)

// NotFoundError reports that the corpus holds no review for Restaurant.
// Callers may retry with a corrected spelling.
type NotFoundError struct {
	Restaurant string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no reviews found for restaurant %q", e.Restaurant)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports malformed aggregator input. Index is -1 when the
// problem is not tied to one element.
type ValidationError struct {
	Field  string
	Index  int
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s[%d]=%d: %s", e.Field, e.Index, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type UnrecognizedKeywordError struct {
	Keyword string
}

func (e *UnrecognizedKeywordError) Error() string {
	return fmt.Sprintf("unrecognized keyword %q", e.Keyword)
}

func (e *UnrecognizedKeywordError) Is(target error) bool { return target == ErrUnrecognizedKeyword }

// ExtractionError reports a review that does not carry exactly one food
// adjective and one customer service adjective.
type ExtractionError struct {
	Text   string
	Found  []string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s (found %d adjectives: [%s]) in review %q",
		e.Reason, len(e.Found), strings.Join(e.Found, ", "), e.Text)
}

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }
