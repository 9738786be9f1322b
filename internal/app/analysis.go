package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"restaurant_score/internal/adapters/observability"
	"restaurant_score/internal/domain"
	"restaurant_score/internal/keywords"
	"restaurant_score/internal/scoring"
)

// AnalysisService runs the full pipeline for one restaurant:
// fetch reviews, rate each review, aggregate.
type AnalysisService struct {
	reviews *ReviewService
}

func NewAnalysisService(r *ReviewService) *AnalysisService {
	return &AnalysisService{reviews: r}
}

func (s *AnalysisService) Analyze(ctx context.Context, restaurant string) (domain.Analysis, error) {
	texts, err := s.reviews.reviewTexts(ctx, restaurant)
	if err != nil {
		return domain.Analysis{}, err
	}

	out := domain.Analysis{Restaurant: restaurant, Reviews: make([]domain.ReviewScore, 0, len(texts))}
	food := make([]int, 0, len(texts))
	svc := make([]int, 0, len(texts))
	for i, text := range texts {
		ex, err := keywords.Extract(text)
		observability.ObserveExtraction(err)
		if err != nil {
			return domain.Analysis{}, fmt.Errorf("review %d of %q: %w", i+1, restaurant, err)
		}
		out.Reviews = append(out.Reviews, domain.ReviewScore{
			Text:             text,
			FoodAdjective:    ex.FoodAdjective,
			ServiceAdjective: ex.ServiceAdjective,
			Scores:           ex.Scores,
		})
		food = append(food, ex.Scores.Food)
		svc = append(svc, ex.Scores.CustomerService)
	}

	res, err := s.CalculateOverallScore(restaurant, food, svc)
	if err != nil {
		return domain.Analysis{}, err
	}
	out.Score = res[restaurant]
	log.Info().Str("restaurant", restaurant).Int("reviews", len(texts)).Str("score", out.Score).Msg("analysis complete")
	return out, nil
}

// CalculateOverallScore is scoring.CalculateOverallScore with metrics.
func (s *AnalysisService) CalculateOverallScore(restaurant string, food, svc []int) (map[string]string, error) {
	res, err := scoring.CalculateOverallScore(restaurant, food, svc)
	observability.ObserveAggregation(err)
	return res, err
}

func (s *AnalysisService) FetchReviews(ctx context.Context, restaurant string) (map[string][]string, error) {
	return s.reviews.FetchReviews(ctx, restaurant)
}

func (s *AnalysisService) ScoreForAdjective(adjective string) (int, error) {
	return keywords.ScoreForAdjective(adjective)
}
