package domain

// Review is one corpus line split into its restaurant name and free text.
type Review struct {
	Restaurant string
	Text       string
	Line       int // 1-based position in the corpus; preserves corpus order
}

// ScorePair is the per-review rating extracted from a review's adjectives.
type ScorePair struct {
	Food            int `json:"food_score" yaml:"food_score"`
	CustomerService int `json:"customer_service_score" yaml:"customer_service_score"`
}

// ReviewScore ties a review text to the adjectives and scores found in it.
type ReviewScore struct {
	Text             string    `json:"text" yaml:"text"`
	FoodAdjective    string    `json:"food_adjective" yaml:"food_adjective"`
	ServiceAdjective string    `json:"customer_service_adjective" yaml:"customer_service_adjective"`
	Scores           ScorePair `json:"scores" yaml:"scores"`
}

// Analysis is the end-to-end result for one restaurant.
type Analysis struct {
	Restaurant string        `json:"restaurant" yaml:"restaurant"`
	Reviews    []ReviewScore `json:"reviews" yaml:"reviews"`
	Score      string        `json:"score" yaml:"score"`
}
