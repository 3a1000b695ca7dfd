// Package server wires the HTTP transport around the application handlers.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashdeck/internal/infrastructure/config"
)

// Router is implemented by the HTTP adapter to mount its routes.
type Router interface {
	Register(r gin.IRouter)
}

// Server owns the HTTP listener lifecycle.
type Server struct {
	cfg    *config.Config
	logger *logrus.Logger
	http   *http.Server
}

// New assembles the gin engine and wraps it in an http.Server.
func New(cfg *config.Config, logger *logrus.Logger, router Router) *Server {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.Register(engine)

	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.ListenAddr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.http.Addr).Info("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}
