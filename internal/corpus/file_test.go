package corpus_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"restaurant_score/internal/corpus"
	"restaurant_score/internal/domain"
)

const sample = "Applebee's. The food at Applebee's was average, but the customer service was unpleasant.\n" +
	"Subway. The sandwiches were good and the staff was enjoyable.\n" +
	"applebee's. Awful food, amazing service.\n" +
	"Subway Express. Bad food, good service.\n" +
	"no delimiter on this line\n" +
	"\n" +
	"Applebee's. Incredible food and satisfying service.\r\n"

func writeCorpus(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "restaurant-data.txt")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return p
}

func texts(rs []domain.Review) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Text)
	}
	return out
}

func TestParseLine(t *testing.T) {
	// names never contain ". ", so the first delimiter wins
	name, text, ok := corpus.ParseLine("Dr. Who's Diner. Good food. Bad service.\n")
	if !ok || name != "Dr" || text != "Who's Diner. Good food. Bad service." {
		t.Fatalf("got %q %q %v", name, text, ok)
	}
	if _, _, ok := corpus.ParseLine("no delimiter"); ok {
		t.Fatalf("expected ok=false")
	}
}

func TestListReviews_CaseInsensitiveExactInOrder(t *testing.T) {
	repo := corpus.NewFileRepo(writeCorpus(t, sample))

	got, err := repo.ListReviews(context.Background(), "APPLEBEE'S")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{
		"The food at Applebee's was average, but the customer service was unpleasant.",
		"Awful food, amazing service.",
		"Incredible food and satisfying service.",
	}
	if d := cmp.Diff(want, texts(got)); d != "" {
		t.Fatalf("reviews mismatch (-want +got):\n%s", d)
	}
	if got[0].Line != 1 || got[1].Line != 3 || got[2].Line != 7 {
		t.Fatalf("unexpected line numbers: %+v", got)
	}
}

func TestListReviews_NoPrefixMatching(t *testing.T) {
	repo := corpus.NewFileRepo(writeCorpus(t, sample))

	got, err := repo.ListReviews(context.Background(), "Subway")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if d := cmp.Diff([]string{"The sandwiches were good and the staff was enjoyable."}, texts(got)); d != "" {
		t.Fatalf("Subway Express must not match Subway (-want +got):\n%s", d)
	}

	none, err := repo.ListReviews(context.Background(), "Apple")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no reviews, got %v %v", none, err)
	}
}

func TestListReviews_MissingFile(t *testing.T) {
	repo := corpus.NewFileRepo(filepath.Join(t.TempDir(), "missing.txt"))
	if _, err := repo.ListReviews(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for missing corpus")
	}
}

func TestListReviews_ReadsFreshEachCall(t *testing.T) {
	p := writeCorpus(t, "Wendy's. Good food, bad service.\n")
	repo := corpus.NewFileRepo(p)

	first, _ := repo.ListReviews(context.Background(), "Wendy's")
	if err := os.WriteFile(p, []byte("Wendy's. Good food, bad service.\nWendy's. Awful food, awful service.\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	second, _ := repo.ListReviews(context.Background(), "Wendy's")
	if len(first) != 1 || len(second) != 2 {
		t.Fatalf("got %d then %d", len(first), len(second))
	}
}

func TestRestaurants(t *testing.T) {
	repo := corpus.NewFileRepo(writeCorpus(t, sample))
	got, err := repo.Restaurants(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if d := cmp.Diff([]string{"Applebee's", "Subway", "Subway Express"}, got); d != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", d)
	}
}

func TestAll(t *testing.T) {
	repo := corpus.NewFileRepo(writeCorpus(t, sample))
	all, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 parsed lines, got %d", len(all))
	}
}
