package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/salesguard/internal/catalog"
	"github.com/salesguard/internal/combat"
	"github.com/salesguard/internal/config"
	"github.com/salesguard/internal/extract"
	"github.com/salesguard/internal/llm"
	"github.com/salesguard/internal/review"
)

// CombatEngine serves one combat turn. It never fails; degraded cards are
// part of its contract.
type CombatEngine interface {
	Engage(ctx context.Context, req combat.Request) combat.Result
}

// ReviewEngine scores one screenshot.
type ReviewEngine interface {
	Score(ctx context.Context, req review.Request) (*review.ReviewResult, error)
}

// Server represents the API server
type Server struct {
	echo    *echo.Echo
	port    int
	combat  CombatEngine
	review  ReviewEngine
	catalog *catalog.Catalog

	combatTimeout time.Duration
	reviewTimeout time.Duration
}

// NewServer wires the provider clients, orchestrators and routes from
// configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	cat, err := catalog.Load(cfg.Stages.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage catalog: %w", err)
	}

	strategies := extract.Strategies(cfg.Extract.Repair)

	combatClient := llm.NewClient(llm.ClientConfig{
		BaseURL:           cfg.Provider.BaseURL,
		APIKey:            cfg.Provider.CombatKey,
		Timeout:           cfg.CombatTimeout(),
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	})
	reviewClient := llm.NewClient(llm.ClientConfig{
		BaseURL:           cfg.Provider.BaseURL,
		APIKey:            cfg.Provider.ReviewKey,
		Timeout:           cfg.ReviewTimeout(),
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	})

	return newServer(
		cfg.Server.Port,
		combat.NewOrchestrator(combatClient, cat, strategies),
		review.NewOrchestrator(reviewClient, strategies),
		cat,
		cfg.CombatTimeout(),
		cfg.ReviewTimeout(),
	), nil
}

func newServer(port int, combatEngine CombatEngine, reviewEngine ReviewEngine, cat *catalog.Catalog, combatTimeout, reviewTimeout time.Duration) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestID())

	server := &Server{
		echo:          e,
		port:          port,
		combat:        combatEngine,
		review:        reviewEngine,
		catalog:       cat,
		combatTimeout: combatTimeout,
		reviewTimeout: reviewTimeout,
	}

	server.setupRoutes()

	return server
}

// requestID tags every request with an id for log correlation.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := uuid.NewString()
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			logger := log.With().Str("request_id", rid).Logger()
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))
			return next(c)
		}
	}
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 group
	v1 := s.echo.Group("/api/v1")

	v1.POST("/combat", s.handleCombat)
	v1.POST("/review", s.handleReview)
	v1.GET("/stages", s.handleStages)
}

// Start begins the API server
func (s *Server) Start() error {
	// Start server in a goroutine
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}
