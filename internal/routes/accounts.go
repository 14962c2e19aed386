package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/internal/account"
	"github.com/finbook/finbook/internal/auth"
)

// RegisterAccountRoutes wires public account endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Register)
}

// RegisterSessionRoutes wires login endpoints with rate limiting.
func RegisterSessionRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	r.Post("/sessions", rateLimiter, h.Login)
}
