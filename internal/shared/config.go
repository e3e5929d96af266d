package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Price feed (wholesale rates API)
	FeedBase string
	FeedKey  string

	// Comparison policy. The cash-back rate is a business knob, not a
	// constant; production runs somewhere in the 3-5% band.
	ReferencePlatform string
	CashBackRate      float64

	// Seeder / worker
	Workers        int
	SeedCount      int
	SeedRandom     int64
	WorkerSchedule string

	PresentationPath string
	CacheTTL         time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		MetricsAddr:       env("METRICS_ADDR", ":9100"),
		MySQLDSN:          env("MYSQL_DSN", "root:root@tcp(localhost:3306)/ratewatch?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:         env("REDIS_ADDR", "localhost:6379"),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		FeedBase:          env("FEED_BASE_URL", "https://web3demo.wholesalehotelrates.com/api"),
		FeedKey:           env("FEED_API_KEY", ""),
		ReferencePlatform: env("REFERENCE_PLATFORM", "wholesalehotelrates"),
		CashBackRate:      atof("CASH_BACK_RATE", 0.03),
		Workers:           atoi("SEED_WORKERS", 8),
		SeedCount:         atoi("SEED_COUNT", 15),
		SeedRandom:        int64(atoi("SEED_RANDOM", 0)),
		WorkerSchedule:    env("WORKER_SCHEDULE", "@every 6h"),
		PresentationPath:  env("PRESENTATION_PATH", ""),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.CashBackRate < 0 || c.CashBackRate > 1 {
		log.Warn().Float64("rate", c.CashBackRate).Msg("CASH_BACK_RATE outside [0,1], using 0.03")
		c.CashBackRate = 0.03
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
