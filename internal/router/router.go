// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sahithiburada/seat-occupancy-system/internal/config"
	"github.com/sahithiburada/seat-occupancy-system/internal/handler"
	"github.com/sahithiburada/seat-occupancy-system/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// dependencies beyond the handlers themselves.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the scan and session endpoints under /api.  These
// are open, matching the kiosk and dashboard clients that call them; the
// rate limiter shields the scan path and the response cache absorbs
// dashboard polling on the read paths.  A nil Redis client disables both
// middlewares without changing the routes.
func RegisterAPI(e *echo.Echo, scan *handler.ScanHandler, sess *handler.SessionHandler, search *handler.SearchHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	api := e.Group("/api")
	api.POST("/scan", scan.Scan, limiter)

	// Static segments must be registered alongside /:id; Echo prefers the
	// literal match, so /session/search and /session/create never collide
	// with the parameterized routes.
	api.POST("/session/create", sess.CreateSession)
	api.GET("/session/search", search.Search, cache)
	api.GET("/session/:id", sess.GetSession, cache)
	api.PUT("/session/:id", sess.UpdateSession)
	api.DELETE("/session/:id", sess.DeleteSession)
	api.POST("/session/end/:id", sess.EndSession)
}

// RegisterAuth registers the staff authentication routes.  Unauthenticated
// token operations live under /api/auth; /api/me requires a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
