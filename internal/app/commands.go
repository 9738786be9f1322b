package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"restaurant_score/internal/domain"
)

// CorpusReader yields the whole corpus in order.
type CorpusReader interface {
	All(ctx context.Context) ([]domain.Review, error)
}

// IngestionService copies the corpus file into a ReviewWriter (MySQL), one
// batch per restaurant, with at most `workers` batches in flight.
type IngestionService struct {
	src   CorpusReader
	dst   domain.ReviewWriter
	cache domain.Cache
}

func NewIngestionService(src CorpusReader, dst domain.ReviewWriter, cache domain.Cache) *IngestionService {
	return &IngestionService{src: src, dst: dst, cache: cache}
}

type IngestReport struct {
	Restaurants int
	Reviews     int
	Failed      []string
}

func (s *IngestionService) IngestCorpus(ctx context.Context, workers int) (IngestReport, error) {
	all, err := s.src.All(ctx)
	if err != nil {
		return IngestReport{}, fmt.Errorf("read corpus: %w", err)
	}

	// group by case-folded name, keeping first-seen order
	var order []string
	groups := map[string][]domain.Review{}
	for _, rv := range all {
		k := strings.ToLower(rv.Restaurant)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], rv)
	}

	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		rep  = IngestReport{Restaurants: len(order)}
	)

	for _, k := range order {
		batch := groups[k]

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(name string, rs []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.dst.UpsertReviews(ctx, rs); err != nil {
				log.Warn().Str("restaurant", name).Err(err).Msg("ingest failed")
				mu.Lock()
				errs = append(errs, fmt.Errorf("upsert reviews for %q: %w", name, err))
				rep.Failed = append(rep.Failed, name)
				mu.Unlock()
				return
			}
			// drop any cached lookup so readers see the new rows
			if s.cache != nil {
				if err := s.cache.Del(ctx, reviewsKey(name)); err != nil {
					log.Warn().Str("restaurant", name).Err(err).Msg("review cache invalidation failed")
				}
			}
			mu.Lock()
			rep.Reviews += len(rs)
			mu.Unlock()
			log.Debug().Str("restaurant", name).Int("reviews", len(rs)).Msg("ingest ok")
		}(batch[0].Restaurant, batch)
	}

	wg.Wait()
	return rep, errors.Join(errs...)
}
