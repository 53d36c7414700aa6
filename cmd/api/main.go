package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"suite_hotel/internal/adapters/gateway"
	server "suite_hotel/internal/adapters/http_server"
	"suite_hotel/internal/adapters/observability"
	redisad "suite_hotel/internal/adapters/redis"
	"suite_hotel/internal/adapters/sui"
	"suite_hotel/internal/app"
	"suite_hotel/internal/domain"
	"suite_hotel/internal/shared"
	mysqlrepo "suite_hotel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db (optional)
	var repo domain.BookingRepository
	if cfg.MySQLDSN != "" {
		dsn, err := mysqlrepo.NormalizeDSN(cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid MYSQL_DSN")
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	}

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	gw := gateway.New(cfg.GatewayBase, gateway.Options{
		APIKey:     cfg.GatewayKey,
		RPS:        cfg.GatewayRPS,
		Timeout:    cfg.GatewayTimeout,
		MaxRetries: cfg.GatewayMaxRetries,
	})
	wallet := sui.New(cfg.SuiRPCURL, cfg.GatewayTimeout)

	// stores: one instance per process, injected everywhere
	hub := app.NewHub()
	hotels := app.NewHotelStore(hub)
	catalog := app.NewCatalogService(gw, cache, hotels, cfg.CacheTTL, cfg.RoomsCacheTTL, cfg.Workers)
	session := app.NewSessionStore(redisad.NewStore(cache.Client()), wallet,
		app.SessionConfig{Key: cfg.SessionKey, CoinType: cfg.SuiCoinType}, hub)
	bookings := app.NewBookingStore(app.NewReservationSource(gw, session, hotels, repo), repo, hub)

	if err := session.Rehydrate(ctx); err != nil {
		log.Warn().Err(err).Msg("session rehydrate failed")
	}
	session.CheckConnection(ctx)
	if err := catalog.Refresh(ctx); err != nil {
		// the store carries the error; the scheduler retries
		log.Warn().Err(err).Msg("initial catalog load failed")
	}

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.RefreshSchedule, func() {
		rctx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		_ = catalog.Invalidate(rctx)
		_ = catalog.Refresh(rctx)
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("invalid refresh schedule")
	}
	sched.Start()
	defer sched.Stop()

	// http
	srv := server.New(server.Options{CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:  catalog,
		Hotels:   hotels,
		Bookings: bookings,
		Session:  session,
		Hub:      hub,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(sctx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
