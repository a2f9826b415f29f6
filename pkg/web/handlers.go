package web

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// handleHealthz reports liveness.
func (s *Server) handleHealthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// handleStatus returns the device counters.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.dev.Stats())
}

// handleAnnounce triggers a test announcement. Returns 409 while one is
// already draining: the device speaks with a single voice.
func (s *Server) handleAnnounce(c *fiber.Ctx) error {
	if s.dev.Stats().Speaking {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "announcement in flight"})
	}

	// Detach from the request: fasthttp recycles its context once the
	// handler returns, and the announcement outlives the 202.
	go func() {
		if !s.dev.Announce(context.Background()) {
			s.logger.Debug("manual announcement rejected or failed")
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true})
}
