package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"restaurant_score/internal/domain"
)

// ReviewService answers fetchReviews. Lookups are cached per lower-cased name
// for the life of the process (or cacheTTL when > 0); concurrent lookups of
// the same name share one corpus read. Misses are never cached.
type ReviewService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewReviewService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{repo: r, cache: c, cacheTTL: ttl}
}

func reviewsKey(restaurant string) string { return "reviews:" + strings.ToLower(restaurant) }

// FetchReviews returns {restaurant: reviews} keyed by the caller's spelling,
// in corpus order. It fails with *domain.NotFoundError when nothing matches.
func (s *ReviewService) FetchReviews(ctx context.Context, restaurant string) (map[string][]string, error) {
	texts, err := s.reviewTexts(ctx, restaurant)
	if err != nil {
		return nil, err
	}
	return map[string][]string{restaurant: texts}, nil
}

func (s *ReviewService) reviewTexts(ctx context.Context, restaurant string) ([]string, error) {
	if strings.TrimSpace(restaurant) == "" {
		return nil, &domain.ValidationError{Field: "restaurant_name", Index: -1, Reason: "must not be empty"}
	}
	key := reviewsKey(restaurant)

	if s.cache != nil {
		var cached []string
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("review cache read failed")
		}
		if ok && err == nil {
			log.Debug().Str("restaurant", restaurant).Int("reviews", len(cached)).Msg("review cache hit")
			return cached, nil
		}
	}

	v, err, shared := s.sf.Do(key, func() (any, error) {
		// the read is shared, so one caller's cancellation must not fail the rest
		rs, err := s.repo.ListReviews(context.WithoutCancel(ctx), restaurant)
		if err != nil {
			return nil, err
		}
		texts := make([]string, len(rs))
		for i, r := range rs {
			texts[i] = r.Text
		}
		if len(texts) > 0 && s.cache != nil {
			if err := s.cache.Set(context.WithoutCancel(ctx), key, texts, int(s.cacheTTL.Seconds())); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("review cache write failed")
			}
		}
		return texts, nil
	})
	if err != nil {
		return nil, err
	}
	texts := v.([]string)
	if len(texts) == 0 {
		return nil, &domain.NotFoundError{Restaurant: restaurant}
	}
	log.Debug().Str("restaurant", restaurant).Int("reviews", len(texts)).Bool("shared", shared).Msg("reviews loaded")

	// callers own their slice
	return append([]string(nil), texts...), nil
}

// ResolveRestaurant maps a free-text query to a corpus restaurant name: the
// longest name that appears in the query as whole words, ignoring case. With
// no such name the trimmed query itself is returned.
func ResolveRestaurant(ctx context.Context, repo domain.ReviewRepository, query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", &domain.ValidationError{Field: "query", Index: -1, Reason: "must not be empty"}
	}
	names, err := repo.Restaurants(ctx)
	if err != nil {
		return "", err
	}
	lq := strings.ToLower(q)
	best := ""
	for _, n := range names {
		if len(n) > len(best) && containsWord(lq, strings.ToLower(n)) {
			best = n
		}
	}
	if best == "" {
		return q, nil
	}
	return best, nil
}

func containsWord(s, sub string) bool {
	if sub == "" {
		return false
	}
	for off := 0; ; {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(sub)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		off = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0x80
}
