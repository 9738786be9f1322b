package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "restaurant_score/internal/adapters/http_server"
	"restaurant_score/internal/adapters/memory"
	"restaurant_score/internal/adapters/observability"
	redisad "restaurant_score/internal/adapters/redis"
	"restaurant_score/internal/app"
	"restaurant_score/internal/corpus"
	"restaurant_score/internal/domain"
	"restaurant_score/internal/shared"
	mysqlrepo "restaurant_score/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stdout)

	observability.Serve(cfg.MetricsAddr)

	// corpus backend
	var repo domain.ReviewRepository
	switch cfg.CorpusBackend {
	case shared.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	default:
		if _, err := os.Stat(cfg.CorpusPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.CorpusPath).Msg("corpus file not readable")
		}
		repo = corpus.NewFileRepo(cfg.CorpusPath)
	}
	log.Info().Str("backend", cfg.CorpusBackend).Msg("corpus ready")

	// cache: redis when shared across processes, memory otherwise
	var cache domain.Cache = memory.New()
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		cache = rc
	}

	a := app.NewAnalysisService(app.NewReviewService(repo, cache, cfg.CacheTTL))

	// http
	srv := server.New(cfg.RateLimitRPS)
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(&server.Handlers{A: a, Repo: repo})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
