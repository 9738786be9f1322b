package domain

import "context"

// ReviewRepository is a read-only view over a review corpus.
// ListReviews returns an empty slice (not an error) when nothing matches.
type ReviewRepository interface {
	ListReviews(ctx context.Context, restaurant string) ([]Review, error)
	Restaurants(ctx context.Context) ([]string, error)
}

type ReviewWriter interface {
	UpsertReviews(ctx context.Context, rs []Review) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
