package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arclab/arclab-api/internal/api/handler"
	"github.com/arclab/arclab-api/internal/api/middleware"
	"github.com/arclab/arclab-api/internal/core/ports"
	"github.com/arclab/arclab-api/internal/core/service"
	arcmongo "github.com/arclab/arclab-api/internal/infrastructure/db/mongo"
)

const sessionTTL = 24 * time.Hour

// Dependencies carries the externally constructed collaborators the router
// wires into handlers: the async mail dispatcher and the AI providers.
type Dependencies struct {
	JWTSecret   string
	Mail        service.MailEnqueuer
	Generator   ports.TextGenerator
	Synthesizer ports.SpeechSynthesizer
	CallTimeout time.Duration
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("arclab"))

	// --- Dependencies ---
	userRepo := arcmongo.NewUserRepository(db)
	pendingRepo := arcmongo.NewPendingRepository(db)
	resetRepo := arcmongo.NewResetRepository(db)
	labRepo := arcmongo.NewLabRepository(db)
	agentRepo := arcmongo.NewAgentRepository(db)

	authService := service.NewAuthService(userRepo, pendingRepo, resetRepo, deps.Mail, deps.JWTSecret, sessionTTL, deps.Logger)
	labService := service.NewLabService(labRepo, deps.Logger)
	agentService := service.NewAgentService(agentRepo, labRepo, deps.Logger)
	invokeService := service.NewInvokeService(agentRepo, deps.Generator, deps.Synthesizer, deps.CallTimeout, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	labHandler := handler.NewLabHandler(labService)
	agentHandler := handler.NewAgentHandler(agentService, invokeService)

	authGate := middleware.Auth(deps.JWTSecret, deps.Logger)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/verify", authHandler.Verify)
	users.POST("/resend", authHandler.Resend)
	users.POST("/login", authHandler.Login)
	users.POST("/forgot", authHandler.Forgot)
	users.POST("/reset", authHandler.Reset)
	users.POST("/logout", authHandler.Logout, authGate)
	users.GET("/profile", authHandler.Profile, authGate)

	// --- Lab routes (all behind the gate) ---
	labs := e.Group("/arc", authGate)
	labs.POST("/create", labHandler.Create)
	labs.GET("/get", labHandler.List)
	labs.DELETE("/delete/:labId", labHandler.Delete)

	// --- Agent routes ---
	// Public reads and invocation bypass the gate; mutation requires a session.
	ai := e.Group("/ai")
	ai.POST("/create/:labId", agentHandler.Create, authGate)
	ai.GET("/get/agent/:id", agentHandler.Get)
	ai.GET("/get/:labId", agentHandler.ListByLab, authGate)
	ai.DELETE("/delete/:id", agentHandler.Delete, authGate)
	ai.POST("/agent/:id", agentHandler.Invoke)
	ai.GET("/options", agentHandler.Options)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
