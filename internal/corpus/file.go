// Package corpus reads the line-oriented review corpus:
//
//	<RestaurantName>. <ReviewText>\n
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"restaurant_score/internal/adapters/observability"
	"restaurant_score/internal/domain"
)

// Delimiter separates the restaurant name from the review text.
const Delimiter = ". "

const maxLine = 1 << 20

// ParseLine splits a corpus line into name and text. ok is false when the
// line carries no delimiter.
func ParseLine(line string) (name, text string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	i := strings.Index(line, Delimiter)
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+len(Delimiter):], true
}

// FileRepo reads the corpus file from disk on every lookup. It holds no state
// besides the path, so it is safe for concurrent use.
type FileRepo struct{ path string }

func NewFileRepo(path string) *FileRepo { return &FileRepo{path: path} }

func (r *FileRepo) Path() string { return r.path }

// ListReviews returns every review whose name equals restaurant, ignoring
// case, in corpus order.
func (r *FileRepo) ListReviews(ctx context.Context, restaurant string) ([]domain.Review, error) {
	start := time.Now()
	var out []domain.Review
	err := r.each(ctx, func(rv domain.Review) {
		if strings.EqualFold(rv.Restaurant, restaurant) {
			out = append(out, rv)
		}
	})
	result := "hit"
	switch {
	case err != nil:
		result = "error"
	case len(out) == 0:
		result = "empty"
	}
	observability.ObserveCorpusRead("file", result, time.Since(start))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Restaurants lists distinct names in order of first appearance, keeping the
// casing of that first line.
func (r *FileRepo) Restaurants(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var names []string
	err := r.each(ctx, func(rv domain.Review) {
		k := strings.ToLower(rv.Restaurant)
		if !seen[k] {
			seen[k] = true
			names = append(names, rv.Restaurant)
		}
	})
	return names, err
}

// All returns the whole corpus in order.
func (r *FileRepo) All(ctx context.Context) ([]domain.Review, error) {
	var out []domain.Review
	err := r.each(ctx, func(rv domain.Review) { out = append(out, rv) })
	return out, err
}

func (r *FileRepo) each(ctx context.Context, fn func(domain.Review)) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return Scan(ctx, f, fn)
}

// Scan walks a corpus stream line by line. Lines without a delimiter are
// skipped with a warning.
func Scan(ctx context.Context, rd io.Reader, fn func(domain.Review)) error {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	n := 0
	for sc.Scan() {
		n++
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		name, text, ok := ParseLine(sc.Text())
		if !ok {
			if strings.TrimSpace(sc.Text()) != "" {
				log.Warn().Int("line", n).Msg("corpus line without delimiter skipped")
			}
			continue
		}
		fn(domain.Review{Restaurant: name, Text: text, Line: n})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	return nil
}
