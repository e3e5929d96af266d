package main

import (
	"context"
	"database/sql"
	"math/rand"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ratewatch/internal/adapters/observability"
	redisad "ratewatch/internal/adapters/redis"
	"ratewatch/internal/app"
	"ratewatch/internal/seed"
	"ratewatch/internal/shared"
	mysqlrepo "ratewatch/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	// SEED_RANDOM=0 means a fresh data set per run; any other value makes the
	// run reproducible.
	seedVal := cfg.SeedRandom
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}

	log.Info().
		Int("count", cfg.SeedCount).
		Int("workers", cfg.Workers).
		Int64("seed", seedVal).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(nil, repo, cache, cfg.ReferencePlatform)

	gen := seed.New(rand.New(rand.NewSource(seedVal)), cfg.ReferencePlatform)
	base := time.Now().UTC()

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	// generation stays on this goroutine for determinism; only the DB writes
	// fan out
	for i := 0; i < cfg.SeedCount; i++ {
		c := gen.Comparison(base)

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			id, err := ing.StoreComparison(ctx, c)
			if err != nil {
				observability.ObserveIngestion("error")
				log.Warn().Str("hotel", c.HotelName).Err(err).Msg("seed failed")
				return
			}
			observability.ObserveIngestion("ok")
			log.Info().Int64("id", id).Str("hotel", c.HotelName).Str("location", c.Location).Msg("seeded")
		}()
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
