package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logica-uic/contest-backend/internal/api/handler"
	"github.com/logica-uic/contest-backend/internal/api/middleware"
	"github.com/logica-uic/contest-backend/internal/core/domain"
	"github.com/logica-uic/contest-backend/internal/core/ports"
	"github.com/logica-uic/contest-backend/pkg/sessiontok"
)

// RouterConfig carries everything the HTTP surface needs. Services are built
// by the caller; the router only binds them to routes.
type RouterConfig struct {
	Auth     ports.AuthService
	Problems ports.ProblemService
	Contests ports.ContestService

	Tokens     *sessiontok.Issuer
	CookiePath string

	// Health probes ping the live connections directly.
	DB    *mongo.Database
	Redis *redis.Client

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("contest"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth, cfg.CookiePath)
	problemHandler := handler.NewProblemHandler(cfg.Problems)
	contestHandler := handler.NewContestHandler(cfg.Contests)
	welcomeHandler := handler.NewWelcomeHandler()

	guard := middleware.Auth(cfg.Tokens)
	organizerOnly := middleware.RBAC(domain.RoleOrganizer)

	// --- Public routes ---
	e.GET("/", welcomeHandler.Welcome)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Protected routes ---
	v1 := e.Group("/v1", guard)
	v1.GET("/me", authHandler.Me)

	v1.GET("/problems", problemHandler.List)
	v1.POST("/problems", problemHandler.Create, organizerOnly)
	v1.DELETE("/problems/:id", problemHandler.Delete, organizerOnly)

	v1.GET("/contests", contestHandler.List)
	v1.POST("/contests", contestHandler.Create, organizerOnly)
	v1.DELETE("/contests/:id", contestHandler.Delete, organizerOnly)

	v1.GET("/users", authHandler.ListUsers, organizerOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
