package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	BackendFile  = "file"
	BackendMySQL = "mysql"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	CorpusPath    string
	CorpusBackend string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	Workers       int
	RateLimitRPS  int
	CacheTTL      time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		CorpusPath:    env("CORPUS_PATH", "restaurant-data.txt"),
		CorpusBackend: strings.ToLower(env("CORPUS_BACKEND", BackendFile)),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		Workers:       atoi("INGEST_WORKERS", 8),
		RateLimitRPS:  atoi("RATE_LIMIT_RPS", 50),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 0)) * time.Second,
	}
	if c.CorpusBackend != BackendFile && c.CorpusBackend != BackendMySQL {
		log.Warn().Str("backend", c.CorpusBackend).Msg("unknown CORPUS_BACKEND, using file")
		c.CorpusBackend = BackendFile
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
