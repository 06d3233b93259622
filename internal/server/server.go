package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	v1 "mainport/internal/api/v1"
	"mainport/internal/config"
	"mainport/internal/service/calculator"
	"mainport/internal/service/store"
)

// Server HTTP server
type Server struct {
	router   *gin.Engine
	sessions *store.MemoryStore
	v1       *v1.Handler
	cfg      *config.AppConfig
}

// NewServer creates the server around a ready engine
func NewServer(cfg *config.AppConfig, engine *calculator.Engine) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := store.NewMemoryStore(cfg.Data.SessionTTL.Duration)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	s := &Server{
		router:   router,
		sessions: sessions,
		v1:       v1.NewHandler(engine, sessions),
		cfg:      cfg,
	}

	s.setupRoutes()

	return s
}

// setupRoutes registers middleware and routes
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	api.Use(RateLimit(s.cfg.Limits.RequestsPerSecond, s.cfg.Limits.Burst))
	{
		s.v1.RegisterRoutes(api)
	}

	// landing page: a fresh session's dashboard
	s.router.GET("/", s.v1.Landing)
}

// Handler http.Handler for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions session store (for tests)
func (s *Server) Sessions() *store.MemoryStore {
	return s.sessions
}

// Run serves addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.RunPurger(ctx, s.cfg.Data.SessionPurgeEvery.Duration)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
