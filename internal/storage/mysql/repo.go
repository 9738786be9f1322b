package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"restaurant_score/internal/adapters/observability"
	"restaurant_score/internal/domain"
)

// rows per INSERT statement; keeps placeholders well under the server limit
const batchSize = 500

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	for len(rs) > 0 {
		n := min(len(rs), batchSize)
		if err := r.upsertBatch(ctx, rs[:n]); err != nil {
			return err
		}
		rs = rs[n:]
	}
	return nil
}

func (r *Repo) upsertBatch(ctx context.Context, rs []domain.Review) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*4)
	for _, rv := range rs {
		values = append(values, "(?,?,?,?)")
		args = append(args,
			rv.Line,                        // line_no
			rv.Restaurant,                  // restaurant
			strings.ToLower(rv.Restaurant), // restaurant_key
			rv.Text,                        // text
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) ListReviews(ctx context.Context, restaurant string) (out []domain.Review, err error) {
	start := time.Now()
	defer func() {
		result := "hit"
		switch {
		case err != nil:
			result = "error"
		case len(out) == 0:
			result = "empty"
		}
		observability.ObserveCorpusRead("mysql", result, time.Since(start))
	}()

	rows, err := r.db.QueryContext(ctx, listReviewsSQL, strings.ToLower(restaurant))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.Line, &rv.Restaurant, &rv.Text); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Restaurants(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listRestaurantsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
