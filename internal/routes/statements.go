package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/internal/statement"
)

// RegisterStatementRoutes wires authenticated statement endpoints.
func RegisterStatementRoutes(r fiber.Router, h *statement.Handler) {
	r.Post("/statements", h.Create)
	r.Get("/statements/balance", h.Balance)
	r.Get("/statements/:statementId", h.Operation)
}
