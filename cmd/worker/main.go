package main

import (
	"context"
	"database/sql"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"ratewatch/internal/adapters/observability"
	"ratewatch/internal/adapters/pricefeed"
	redisad "ratewatch/internal/adapters/redis"
	"ratewatch/internal/app"
	"ratewatch/internal/domain"
	"ratewatch/internal/seed"
	"ratewatch/internal/shared"
	mysqlrepo "ratewatch/internal/storage/mysql"
)

// The worker keeps the demo fresh: on every cron fire it picks a handful of
// stays and re-pulls their platform quotes from the live price feed.
func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.Serve()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	feed, err := pricefeed.New(cfg.FeedBase, cfg.FeedKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("price feed client init failed")
	}

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(feed, repo, cache, cfg.ReferencePlatform)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		runOnce(ctx, ing, cfg.ReferencePlatform)
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.WorkerSchedule, run); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.WorkerSchedule).Msg("invalid worker schedule")
	}
	log.Info().Str("schedule", cfg.WorkerSchedule).Msg("worker starting")
	c.Start()

	// one pass right away so a fresh environment isn't empty until the first
	// cron fire
	run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info().Msg("worker stopped")
}

func runOnce(ctx context.Context, ing *app.IngestionService, referencePlatform string) {
	gen := seed.New(rand.New(rand.NewSource(time.Now().UnixNano())), referencePlatform)
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		// the generator picks the stay; the feed supplies the actual prices
		c := gen.Comparison(base)
		stay := domain.StayQuery{
			HotelName:  c.HotelName,
			Location:   c.Location,
			CheckIn:    c.CheckIn,
			CheckOut:   c.CheckOut,
			StarRating: c.StarRating,
		}
		id, err := ing.IngestComparison(ctx, stay)
		switch {
		case err != nil:
			observability.ObserveIngestion("error")
			log.Warn().Str("hotel", stay.HotelName).Err(err).Msg("ingest failed")
		case id == 0:
			observability.ObserveIngestion("miss")
			log.Info().Str("hotel", stay.HotelName).Msg("ingest miss")
		default:
			observability.ObserveIngestion("ok")
			log.Info().Int64("id", id).Str("hotel", stay.HotelName).Msg("ingest ok")
		}
	}
}
