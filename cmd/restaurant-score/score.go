package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"restaurant_score/internal/adapters/memory"
	"restaurant_score/internal/adapters/observability"
	"restaurant_score/internal/app"
	"restaurant_score/internal/corpus"
	"restaurant_score/internal/domain"
	"restaurant_score/internal/shared"
)

const (
	exitNotFound = 2
	exitContract = 3
)

type scoreFlags struct {
	corpus  string
	format  string
	detail  bool
	verbose bool
}

func bindScoreFlags(cmd *cobra.Command, f *scoreFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.corpus, "corpus", "", "Corpus file path (default: $CORPUS_PATH or restaurant-data.txt)")
	flags.StringVar(&f.format, "format", "text", "Output format: text, json or yaml")
	flags.BoolVar(&f.detail, "detail", false, "Include per-review ratings in text output")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")
}

func runScore(ctx context.Context, query string, f *scoreFlags, stdout, stderr io.Writer) error {
	level := "warn"
	if f.verbose {
		level = "debug"
	}
	// before Load, so config warnings carry the run id
	log.Logger = observability.NewLogger(os.Getenv("APP_ENV"), level, stderr).With().Str("run_id", uuid.NewString()).Logger()
	cfg := shared.Load()

	format := strings.ToLower(f.format)
	switch format {
	case "text", "json", "yaml":
	default:
		return exitError(1, "unknown --format %q (want text, json or yaml)", f.format)
	}

	path := f.corpus
	if path == "" {
		path = cfg.CorpusPath
	}
	repo := corpus.NewFileRepo(path)

	name, err := app.ResolveRestaurant(ctx, repo, query)
	if err != nil {
		return exitError(1, "resolve restaurant: %v", err)
	}
	log.Debug().Str("query", query).Str("restaurant", name).Msg("restaurant resolved")

	a, err := app.NewAnalysisService(app.NewReviewService(repo, memory.New(), 0)).Analyze(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return exitError(exitNotFound, "%v", err)
	case errors.Is(err, domain.ErrExtraction), errors.Is(err, domain.ErrValidation):
		return exitError(exitContract, "%v", err)
	case err != nil:
		return exitError(1, "%v", err)
	}

	return render(stdout, format, a, f.detail)
}

func render(w io.Writer, format string, a domain.Analysis, detail bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(a)
	}
	if detail {
		for i, r := range a.Reviews {
			fmt.Fprintf(w, "%d. food=%d (%s) customer_service=%d (%s)\n",
				i+1, r.Scores.Food, r.FoodAdjective, r.Scores.CustomerService, r.ServiceAdjective)
		}
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", a.Restaurant, a.Score)
	return err
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
