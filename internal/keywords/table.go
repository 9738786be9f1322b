// Package keywords holds the fixed sentiment vocabulary used to rate reviews
// and the deterministic extractor that applies it to review text.
package keywords

import "restaurant_score/internal/domain"

const (
	MinScore = 1
	MaxScore = 5
)

// Level groups the adjectives that map to one score.
type Level struct {
	Score      int      `json:"score" yaml:"score"`
	Adjectives []string `json:"adjectives" yaml:"adjectives"`
}

var levels = [...]struct {
	score int
	words [3]string
}{
	{1, [3]string{"awful", "horrible", "disgusting"}},
	{2, [3]string{"bad", "unpleasant", "offensive"}},
	{3, [3]string{"average", "uninspiring", "forgettable"}},
	{4, [3]string{"good", "enjoyable", "satisfying"}},
	{5, [3]string{"awesome", "incredible", "amazing"}},
}

// built once; never written after init
var adjectiveScores = func() map[string]int {
	m := make(map[string]int, len(levels)*3)
	for _, l := range levels {
		for _, w := range l.words {
			m[w] = l.score
		}
	}
	return m
}()

// ScoreForAdjective returns the score level of a recognized adjective.
// Matching is exact and case-sensitive.
func ScoreForAdjective(adjective string) (int, error) {
	s, ok := adjectiveScores[adjective]
	if !ok {
		return 0, &domain.UnrecognizedKeywordError{Keyword: adjective}
	}
	return s, nil
}

// Table returns a copy of the vocabulary ordered by score.
func Table() []Level {
	out := make([]Level, 0, len(levels))
	for _, l := range levels {
		out = append(out, Level{Score: l.score, Adjectives: append([]string(nil), l.words[:]...)})
	}
	return out
}

// Len is the number of recognized adjectives.
func Len() int { return len(adjectiveScores) }
