package keywords

import (
	"strings"
	"unicode"

	"restaurant_score/internal/domain"
)

type category int

const (
	unknown category = iota
	ambiguous
	food
	service
)

func (c category) known() bool { return c == food || c == service }

func (c category) other() category {
	if c == food {
		return service
	}
	return food
}

var foodCues = setOf(
	"food", "meal", "meals", "dish", "dishes", "menu", "cuisine", "flavor", "flavors",
	"flavour", "flavours", "taste", "tastes", "burger", "burgers", "pizza", "sandwich",
	"sandwiches", "chicken", "fries", "coffee", "drinks", "portions",
)

var serviceCues = setOf(
	"service", "staff", "waiter", "waiters", "waitress", "server", "servers", "employee",
	"employees", "crew", "team", "host", "hostess", "cashier", "cashiers", "barista", "baristas",
)

func setOf(ws ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		m[w] = struct{}{}
	}
	return m
}

type hit struct {
	word   string
	score  int
	clause int
	pos    int
}

// Extraction is the result of rating a single review.
type Extraction struct {
	FoodAdjective    string
	ServiceAdjective string
	Scores           domain.ScorePair
}

// Extract finds the food and customer service adjectives in a review and
// rates them. The review must contain exactly two vocabulary adjectives.
//
// Each adjective takes the aspect of the nearest cue word in its clause.
// An adjective with no cue takes the aspect the other one leaves over; when
// neither has a cue, the first adjective rates the food and the second the
// service. Adjectives that land on the same aspect, or whose nearest cues
// disagree with no way to settle it, fail with *domain.ExtractionError.
func Extract(text string) (Extraction, error) {
	clauses, hits := scan(text)

	if len(hits) != 2 {
		found := make([]string, 0, len(hits))
		for _, h := range hits {
			found = append(found, h.word)
		}
		return Extraction{}, &domain.ExtractionError{
			Text:   text,
			Found:  found,
			Reason: "expected exactly one food and one customer service adjective",
		}
	}

	a, b := hits[0], hits[1]
	ca, cb := nearestCue(clauses[a.clause], a.pos), nearestCue(clauses[b.clause], b.pos)
	fail := func(reason string) (Extraction, error) {
		return Extraction{}, &domain.ExtractionError{Text: text, Found: []string{a.word, b.word}, Reason: reason}
	}

	switch {
	case ca.known() && cb.known():
		if ca == cb {
			return fail("both adjectives describe the same aspect")
		}
	case ca.known():
		cb = ca.other()
	case cb.known():
		ca = cb.other()
	case ca == ambiguous || cb == ambiguous:
		return fail("cannot tell which adjective rates the food")
	default:
		ca, cb = food, service
	}
	if ca == service {
		a, b = b, a
	}

	return Extraction{
		FoodAdjective:    a.word,
		ServiceAdjective: b.word,
		Scores:           domain.ScorePair{Food: a.score, CustomerService: b.score},
	}, nil
}

// clauseBreaks are conjunctions that start a new clause.
var clauseBreaks = setOf("but", "while", "whereas", "although", "though")

// scan splits text into lower-cased word clauses and records every
// vocabulary adjective with its clause and position. Clauses break on
// sentence punctuation and on clauseBreaks. A hyphen between letters joins
// a compound word, so "good-looking" is one token.
func scan(text string) ([][]string, []hit) {
	clauses := [][]string{nil}
	var hits []hit
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := strings.ToLower(word.String())
		word.Reset()
		if _, ok := clauseBreaks[w]; ok {
			clauses = append(clauses, nil)
			return
		}
		cur := len(clauses) - 1
		if s, err := ScoreForAdjective(w); err == nil {
			hits = append(hits, hit{word: w, score: s, clause: cur, pos: len(clauses[cur])})
		}
		clauses[cur] = append(clauses[cur], w)
	}

	rs := []rune(text)
	for i, r := range rs {
		if unicode.IsLetter(r) {
			word.WriteRune(r)
			continue
		}
		if r == '-' && word.Len() > 0 && i+1 < len(rs) && unicode.IsLetter(rs[i+1]) {
			word.WriteRune(r)
			continue
		}
		flush()
		switch r {
		case '.', ',', ';', ':', '!', '?':
			clauses = append(clauses, nil)
		}
	}
	flush()
	return clauses, hits
}

// nearestCue returns the aspect of the cue word closest to clause[pos].
// Equally close cues of different aspects yield ambiguous.
func nearestCue(clause []string, pos int) category {
	best, dist := unknown, len(clause)+1
	for i, w := range clause {
		var c category
		if _, ok := foodCues[w]; ok {
			c = food
		} else if _, ok := serviceCues[w]; ok {
			c = service
		} else {
			continue
		}
		d := i - pos
		if d < 0 {
			d = -d
		}
		switch {
		case d < dist:
			best, dist = c, d
		case d == dist && c != best:
			best = ambiguous
		}
	}
	return best
}
