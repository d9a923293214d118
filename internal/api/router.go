package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskify/taskify-api/internal/api/handler"
	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/service"
	"github.com/taskify/taskify-api/internal/infrastructure/config"
	mongoinfra "github.com/taskify/taskify-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/taskify/taskify-api/internal/infrastructure/db/redis"
)

const (
	authRateLimit  = 5
	authRateWindow = 15 * time.Minute
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case auth routes run unthrottled.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics)
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:           600,
	}))

	// --- Dependencies ---
	userRepo := mongoinfra.NewUserRepository(db)
	todoRepo := mongoinfra.NewTodoRepository(db)

	tokenIssuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenIssuer, cfg.ResetTokenTTL)
	todoService := service.NewTodoService(todoRepo)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	adminHandler := handler.NewAdminHandler(userRepo)

	authMW := middleware.Auth(tokenIssuer, userRepo, log)

	// --- Auth routes ---
	// The limiter covers credential-guessing surfaces only; registration
	// stays open.
	var throttled []echo.MiddlewareFunc
	if rdb != nil {
		limiter := redisinfra.NewLimiter(rdb, "auth", authRateLimit, authRateWindow)
		throttled = append(throttled, middleware.RateLimit(limiter, log))
	}

	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, throttled...)
	auth.POST("/forgot-password", authHandler.ForgotPassword, throttled...)
	auth.POST("/reset-password", authHandler.ResetPassword, throttled...)

	// --- Todo routes ---
	todos := e.Group("/todos", authMW, middleware.RequireAuth)
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/admin", authMW, middleware.RequireAdmin)
	admin.GET("/users", adminHandler.ListUsers)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
