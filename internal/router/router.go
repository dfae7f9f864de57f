package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/dealership-inventory/internal/config"
	"github.com/iliyamo/dealership-inventory/internal/handler"
	"github.com/iliyamo/dealership-inventory/internal/middleware"
	"github.com/iliyamo/dealership-inventory/internal/model"
)

// Register wires every route onto the Echo instance along with its
// middleware.  The layering mirrors the access model: catalog reads are
// public, account self-service needs a session, inventory mutations need
// Employee or above, account management is Admin only.  The rate limiter
// guards only the credential endpoints.
func Register(e *echo.Echo, cfg config.Config, lg zerolog.Logger, rdb *redis.Client,
	auth *handler.AuthHandler, acct *handler.AccountHandler, inv *handler.InventoryHandler) {

	e.Use(middleware.RequestLogging(lg))

	e.GET("/healthz", handler.Health)

	// Public catalog browsing: no session required.
	e.GET("/v1/classifications", inv.ListClassifications)
	e.GET("/v1/classifications/:id/vehicles", inv.ListVehiclesByClassification)
	e.GET("/v1/vehicles/:id", inv.GetVehicle)

	// Credential endpoints, throttled per client IP.
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	g := e.Group("/v1/auth")
	g.POST("/register", auth.Register, limit)
	g.POST("/login", auth.Login, limit)
	g.POST("/logout", auth.Logout)

	// Anything below requires a valid session token.
	session := middleware.Session(cfg.JWTSecret)

	me := e.Group("/v1", session)
	me.GET("/me", auth.Me)
	me.PUT("/account", acct.UpdateProfile)
	me.PUT("/account/password", acct.ChangePassword)

	// Inventory mutations: Employee or Admin.
	staff := e.Group("/v1", session, middleware.RequireRole(model.RoleEmployee))
	staff.POST("/classifications", inv.CreateClassification)
	staff.POST("/vehicles", inv.CreateVehicle)
	staff.PUT("/vehicles/:id", inv.UpdateVehicle)
	staff.DELETE("/vehicles/:id", inv.DeleteVehicle)

	// Account management: Admin only.
	admin := e.Group("/v1", session, middleware.RequireRole(model.RoleAdmin))
	admin.GET("/accounts", acct.ListAccounts)
	admin.PUT("/accounts/role", acct.UpdateAccountType)
}
