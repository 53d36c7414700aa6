package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"suite_hotel/internal/adapters/gateway"
	"suite_hotel/internal/adapters/observability"
	redisad "suite_hotel/internal/adapters/redis"
	"suite_hotel/internal/app"
	"suite_hotel/internal/shared"
)

// warmer fills the redis catalogue and rooms caches ahead of API traffic.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.GatewayBase).
		Int("workers", cfg.Workers).
		Msg("warmer starting")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	gw := gateway.New(cfg.GatewayBase, gateway.Options{
		APIKey:     cfg.GatewayKey,
		RPS:        cfg.GatewayRPS,
		Timeout:    cfg.GatewayTimeout,
		MaxRetries: cfg.GatewayMaxRetries,
	})

	// 2) Invalidate only knows the rooms keys of hotels already in the store,
	// so a first refresh discovers the ids; the second refills every key
	// through the same path the API uses.
	hotels := app.NewHotelStore(nil)
	catalog := app.NewCatalogService(gw, cache, hotels, cfg.CacheTTL, cfg.RoomsCacheTTL, cfg.Workers)
	if err := catalog.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("warm catalog failed")
	}
	if err := catalog.Invalidate(ctx); err != nil {
		log.Fatal().Err(err).Msg("cache invalidation failed")
	}
	if err := catalog.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("warm catalog failed")
	}

	log.Info().Int("hotels", len(hotels.Hotels())).Msg("warm completed")
}
