package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dealership-inventory/internal/cache"
	"github.com/iliyamo/dealership-inventory/internal/config"
	"github.com/iliyamo/dealership-inventory/internal/database"
	"github.com/iliyamo/dealership-inventory/internal/handler"
	"github.com/iliyamo/dealership-inventory/internal/logger"
	"github.com/iliyamo/dealership-inventory/internal/queue"
	"github.com/iliyamo/dealership-inventory/internal/repository"
	"github.com/iliyamo/dealership-inventory/internal/router"
	queue_publisher "github.com/iliyamo/dealership-inventory/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	lg := logger.New(cfg.Env)

	db, err := database.Open(cfg)
	if err != nil {
		lg.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// Redis backs the classification cache and login throttling; when it
	// is unreachable the client is nil and both degrade gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		lg.Warn().Msg("redis unavailable; nav cache and rate limiting disabled")
	}

	accounts := repository.NewAccountRepo(db)
	classifications := repository.NewClassificationRepo(db)
	vehicles := repository.NewVehicleRepo(db)

	nav := cache.NewClassificationCache(config.LoadNavCacheConfig(), rdb, classifications, lg)

	authH := handler.NewAuthHandler(cfg, accounts, lg)
	acctH := handler.NewAccountHandler(cfg, accounts, lg)
	invH := handler.NewInventoryHandler(classifications, vehicles, nav, queue_publisher.PublishInventoryEvent, lg)

	// Audit-trail consumer for inventory events; reconnects forever.
	go func() {
		if err := queue.StartInventoryConsumer(); err != nil {
			lg.Error().Err(err).Msg("inventory consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, lg, rdb, authH, acctH, invH)

	addr := ":" + cfg.Port
	lg.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		lg.Fatal().Err(err).Msg("server stopped")
	}
}
