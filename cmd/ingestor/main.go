package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"restaurant_score/internal/adapters/observability"
	redisad "restaurant_score/internal/adapters/redis"
	"restaurant_score/internal/app"
	"restaurant_score/internal/corpus"
	"restaurant_score/internal/domain"
	"restaurant_score/internal/shared"
	mysqlrepo "restaurant_score/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stdout)

	log.Info().
		Str("corpus", cfg.CorpusPath).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	// API instances sharing a redis cache must drop stale lookups
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	ing := app.NewIngestionService(corpus.NewFileRepo(cfg.CorpusPath), mysqlrepo.New(db), cache)

	start := time.Now()
	rep, err := ing.IngestCorpus(ctx, cfg.Workers)
	if err != nil {
		log.Error().Err(err).Strs("failed", rep.Failed).Msg("ingestion finished with errors")
		os.Exit(1)
	}
	log.Info().
		Int("restaurants", rep.Restaurants).
		Int("reviews", rep.Reviews).
		Dur("took", time.Since(start)).
		Msg("ingestion completed")
}
