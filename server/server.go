// Package server assembles the calevents HTTP server.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/calevents/calevents/internal/profile"
	apiv1 "github.com/calevents/calevents/server/router/api/v1"
)

// Server is the calevents HTTP server.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer creates the server and registers all routes.
func NewServer(p *profile.Profile) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			slog.Info("http request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status))
			return nil
		},
	}))

	apiService := apiv1.NewAPIV1Service(p)
	apiService.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{
		Profile:    p,
		echoServer: e,
		apiService: apiService,
	}
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	slog.Info("server started",
		slog.String("addr", s.Profile.ListenAddr()),
		slog.String("mode", s.Profile.Mode),
		slog.String("provider", s.Profile.LLMProvider))
	if err := s.echoServer.Start(s.Profile.ListenAddr()); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echoServer.Shutdown(ctx)
}
