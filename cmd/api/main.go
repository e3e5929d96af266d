package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "ratewatch/internal/adapters/http_server"
	"ratewatch/internal/adapters/observability"
	redisad "ratewatch/internal/adapters/redis"
	"ratewatch/internal/app"
	"ratewatch/internal/player"
	"ratewatch/internal/shared"
	mysqlrepo "ratewatch/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// presentation config is validated before anything is served; a broken
	// config is a startup failure, not a runtime surprise
	pres := player.Demo()
	if cfg.PresentationPath != "" {
		var err error
		pres, err = player.Load(cfg.PresentationPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.PresentationPath).Msg("presentation config rejected")
		}
	}

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL, cfg.ReferencePlatform, cfg.CashBackRate)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Presentation: pres})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
