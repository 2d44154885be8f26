package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/eventflow-booking/internal/config"
    "github.com/iliyamo/eventflow-booking/internal/handler"    // handlers implementing each endpoint
    "github.com/iliyamo/eventflow-booking/internal/middleware" // identity, capability, rate limit and cache middleware
    "github.com/iliyamo/eventflow-booking/internal/model"
)

// Deps carries everything the route table needs.  Redis may be nil, in
// which case rate limiting and caching are disabled.
type Deps struct {
    Payments  *handler.PaymentHandler
    Bookings  *handler.BookingHandler
    JWTSecret string
    Redis     *redis.Client
    RateLimit config.RateLimitConfig
    Cache     config.CacheConfig
    Log       *zap.Logger
}

// RegisterRoutes installs the global middleware chain and every route.
func RegisterRoutes(e *echo.Echo, d Deps) {
    if d.Log == nil {
        d.Log = zap.NewNop()
    }
    e.Use(middleware.RequestID())
    e.Use(middleware.RequestLogger(d.Log))
    // Identity is resolved once for every request; public routes simply
    // ignore it.
    e.Use(middleware.Identify(d.JWTSecret))

    limit := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log)
    cache := middleware.NewRedisCache(d.Cache, d.Redis, d.Log)

    e.GET("/", handler.Health)
    e.GET("/healthz", handler.Health)

    RegisterPublic(e, d.Payments, d.Bookings, limit, cache)
    RegisterAdmin(e, d.Bookings)
}

// RegisterPublic registers the unauthenticated checkout and booking
// endpoints.  Writes go through the rate limiter; the static reads are
// cached.
func RegisterPublic(e *echo.Echo, p *handler.PaymentHandler, b *handler.BookingHandler, limit, cache echo.MiddlewareFunc) {
    e.GET("/payment/key", p.Key, cache)
    e.GET("/packages", handler.Packages, cache)

    e.POST("/payment/order", p.CreateOrder, limit)
    e.POST("/payment/verify", p.Verify, limit)
    e.POST("/events", b.Create, limit)

    e.POST("/ai/assist", handler.Assist)
}

// RegisterAdmin registers the booking views.  Each route carries its own
// capability so organizers can read while only admins approve or see
// revenue.
func RegisterAdmin(e *echo.Echo, b *handler.BookingHandler) {
    g := e.Group("/admin")
    g.GET("/events", b.List, middleware.RequireCapability(model.CanViewBookings))
    g.GET("/events/:id", b.Get, middleware.RequireCapability(model.CanViewBookings))
    g.PATCH("/events/:id/approve", b.Approve, middleware.RequireCapability(model.CanApproveBookings))
    g.GET("/stats", b.Stats, middleware.RequireCapability(model.CanViewStats))
}
