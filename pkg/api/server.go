package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/andri/podgrid/internal/logger"
	"github.com/andri/podgrid/pkg/config"
	"github.com/andri/podgrid/pkg/k8s"
)

// Server exposes the pod inventory REST API over an echo engine.
type Server struct {
	cfg    *config.Config
	client *k8s.Client
	echo   *echo.Echo
}

// NewServer wires routes and middleware onto a fresh echo engine.
func NewServer(cfg *config.Config, client *k8s.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		cfg:    cfg,
		client: client,
		echo:   e,
	}

	e.Use(middleware.Recover())
	e.Use(requestLogMiddleware)
	e.Use(metricsMiddleware)

	e.GET("/healthz", s.handleHealthz)
	e.GET("/readyz", s.handleReadyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	if cfg.Server.RateLimitPerMinute > 0 {
		v1.Use(rateLimitMiddleware(cfg.Server.RateLimitPerMinute))
	}
	v1.GET("/pods", s.handleListPods)
	v1.POST("/pods/delete", s.handleDeletePod)
	v1.POST("/pods/script", s.handleRunScript)
	v1.GET("/scripts", s.handleListScripts)
	v1.GET("/namespaces", s.handleListNamespaces)
	v1.GET("/diagnostic", s.handleDiagnostic)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting api server", "addr", s.cfg.Server.ListenAddr)
		errCh <- s.echo.Start(s.cfg.Server.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// requestLogMiddleware logs one line per request after it completes.
func requestLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		logger.Info("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", c.RealIP())

		return err
	}
}

// rateLimitMiddleware applies a per-client request budget. Exceeding it
// returns 429 with a JSON body instead of echo's default error shape.
func rateLimitMiddleware(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60.0),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("rate limit exceeded", "client", identifier)
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded, try again later",
			})
		},
	})
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports ready only when the API server is reachable.
func (s *Server) handleReadyz(c echo.Context) error {
	if _, err := s.client.Clientset.Discovery().ServerVersion(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
