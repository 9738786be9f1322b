// Package scoring combines per-review food and customer service ratings into
// a single restaurant score in [0, 10].
package scoring

import (
	"math"
	"strconv"

	"restaurant_score/internal/domain"
	"restaurant_score/internal/keywords"
)

// Precision is the number of digits rendered after the decimal point.
const Precision = 3

// sqrt(5^2 * 5), the largest possible per-review term
var maxTerm = math.Sqrt(125)

// CalculateOverallScore returns {restaurant: score} with the score rendered
// to Precision decimal places.
func CalculateOverallScore(restaurant string, foodScores, serviceScores []int) (map[string]string, error) {
	v, err := Score(foodScores, serviceScores)
	if err != nil {
		return nil, err
	}
	return map[string]string{restaurant: Format(v)}, nil
}

// Score computes
//
//	10 / (N * sqrt(125)) * sum(sqrt(food[i]^2 * service[i]))
//
// Food is squared so it weighs more than service in every term. Input is
// validated in full before anything is summed.
func Score(foodScores, serviceScores []int) (float64, error) {
	if err := validate(foodScores, serviceScores); err != nil {
		return 0, err
	}
	var sum float64
	for i := range foodScores {
		f, s := float64(foodScores[i]), float64(serviceScores[i])
		sum += math.Sqrt(f * f * s)
	}
	n := float64(len(foodScores))
	return 10 / (n * maxTerm) * sum, nil
}

// FromPairs is Score over extracted pairs.
func FromPairs(pairs []domain.ScorePair) (float64, error) {
	food := make([]int, len(pairs))
	svc := make([]int, len(pairs))
	for i, p := range pairs {
		food[i], svc[i] = p.Food, p.CustomerService
	}
	return Score(food, svc)
}

func Format(v float64) string { return strconv.FormatFloat(v, 'f', Precision, 64) }

func validate(food, svc []int) error {
	if len(food) != len(svc) {
		return &domain.ValidationError{
			Field:  "scores",
			Index:  -1,
			Reason: "food_scores has " + strconv.Itoa(len(food)) + " entries but customer_service_scores has " + strconv.Itoa(len(svc)),
		}
	}
	if len(food) == 0 {
		return &domain.ValidationError{Field: "scores", Index: -1, Reason: "at least one review score is required"}
	}
	if err := checkRange("food_scores", food); err != nil {
		return err
	}
	return checkRange("customer_service_scores", svc)
}

func checkRange(field string, xs []int) error {
	for i, x := range xs {
		if x < keywords.MinScore || x > keywords.MaxScore {
			return &domain.ValidationError{
				Field:  field,
				Index:  i,
				Value:  x,
				Reason: "score must be between 1 and 5",
			}
		}
	}
	return nil
}
