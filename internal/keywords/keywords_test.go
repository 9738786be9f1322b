package keywords_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant_score/internal/domain"
	"restaurant_score/internal/keywords"
)

func TestScoreForAdjective_AllLevels(t *testing.T) {
	want := map[string]int{
		"awful": 1, "horrible": 1, "disgusting": 1,
		"bad": 2, "unpleasant": 2, "offensive": 2,
		"average": 3, "uninspiring": 3, "forgettable": 3,
		"good": 4, "enjoyable": 4, "satisfying": 4,
		"awesome": 5, "incredible": 5, "amazing": 5,
	}
	require.Equal(t, 15, keywords.Len())
	for adj, score := range want {
		got, err := keywords.ScoreForAdjective(adj)
		require.NoError(t, err, adj)
		require.Equal(t, score, got, adj)
	}
}

func TestScoreForAdjective_Unrecognized(t *testing.T) {
	for _, in := range []string{"", "great", "Amazing", "amazing ", "terrible", "goodish"} {
		_, err := keywords.ScoreForAdjective(in)
		require.ErrorIs(t, err, domain.ErrUnrecognizedKeyword, in)

		var uk *domain.UnrecognizedKeywordError
		require.True(t, errors.As(err, &uk))
		require.Equal(t, in, uk.Keyword)
	}
}

func TestTable_IsACopy(t *testing.T) {
	tbl := keywords.Table()
	require.Len(t, tbl, 5)
	for i, l := range tbl {
		require.Equal(t, i+1, l.Score)
		require.Len(t, l.Adjectives, 3)
	}

	tbl[0].Adjectives[0] = "lovely"
	_, err := keywords.ScoreForAdjective("lovely")
	require.Error(t, err)
	require.Equal(t, "awful", keywords.Table()[0].Adjectives[0])
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		food, svc string
		foodScore int
		svcScore  int
	}{
		{
			name: "food first",
			text: "The food at Applebee's was average, but the customer service was unpleasant.",
			food: "average", svc: "unpleasant", foodScore: 3, svcScore: 2,
		},
		{
			name: "service first with cues",
			text: "The staff were incredible! Sadly the burgers were disgusting.",
			food: "disgusting", svc: "incredible", foodScore: 1, svcScore: 5,
		},
		{
			name: "no cues falls back to order",
			text: "Good, and honestly awesome.",
			food: "good", svc: "awesome", foodScore: 4, svcScore: 5,
		},
		{
			name: "sentence initial capital",
			text: "Amazing meal. Bad service though.",
			food: "amazing", svc: "bad", foodScore: 5, svcScore: 2,
		},
		{
			name: "one clause both cues",
			text: "The food was satisfying and the service was forgettable",
			food: "satisfying", svc: "forgettable", foodScore: 4, svcScore: 3,
		},
		{
			name: "one clause service first",
			text: "The service was awful and the food was amazing.",
			food: "amazing", svc: "awful", foodScore: 5, svcScore: 1,
		},
		{
			name: "while joins service then food",
			text: "Our waiter was incredible while the pizza was disgusting.",
			food: "disgusting", svc: "incredible", foodScore: 1, svcScore: 5,
		},
		{
			name: "uncued adjective takes the other aspect",
			text: "Amazing food awful service",
			food: "amazing", svc: "awful", foodScore: 5, svcScore: 1,
		},
		{
			name: "hyphenated compounds are not adjectives",
			text: "The good-looking staff was bad, the well-made burgers were awesome.",
			food: "awesome", svc: "bad", foodScore: 5, svcScore: 2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := keywords.Extract(tc.text)
			require.NoError(t, err)
			require.Equal(t, tc.food, got.FoodAdjective)
			require.Equal(t, tc.svc, got.ServiceAdjective)
			require.Equal(t, domain.ScorePair{Food: tc.foodScore, CustomerService: tc.svcScore}, got.Scores)
		})
	}
}

func TestExtract_ContractViolations(t *testing.T) {
	for _, text := range []string{
		"Nothing to say here.",
		"The food was good.",
		"The food was average, the service was unpleasant and the menu uninspiring.",
		"The food was awful. The food was amazing.",
		"The good-looking staff gave awful service.",
		"Service good food bad service.",
	} {
		_, err := keywords.Extract(text)
		require.ErrorIs(t, err, domain.ErrExtraction, text)
	}
}
