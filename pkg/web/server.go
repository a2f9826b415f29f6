// Package web serves the local diagnostics endpoint for the device.
//
// The announcement core itself has no network dependency; this surface only
// reads counters and can fire a test announcement on the LAN.
package web

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tockworks/go-tock/pkg/device"
)

// Announcer is the slice of the device the endpoint needs.
type Announcer interface {
	Stats() device.Stats
	Announce(ctx context.Context) bool
}

// Server is the diagnostics HTTP server.
type Server struct {
	app    *fiber.App
	addr   string
	dev    Announcer
	logger *slog.Logger
}

// NewServer creates a diagnostics server bound to addr (e.g. ":8730").
func NewServer(addr string, dev Announcer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:   addr,
		dev:    dev,
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "tockd",
		DisableStartupMessage: true,
	})

	app.Get("/healthz", s.handleHealthz)
	app.Get("/status", s.handleStatus)
	app.Post("/announce", s.handleAnnounce)

	s.app = app
	return s
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	s.logger.Info("diagnostics endpoint listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		return s.app.Shutdown()
	case err := <-errCh:
		return err
	}
}
