package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/internal/account"
	"github.com/finbook/finbook/internal/auth"
)

// JWTAuth returns a middleware that validates bearer tokens and resolves the
// authenticated account. The account id is stored in c.Locals("account_id").
func JWTAuth(tokens *auth.Service, repo account.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		accountID, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		exists, err := repo.Exists(c.UserContext(), accountID)
		if err != nil || !exists {
			return fiber.NewError(http.StatusUnauthorized, "account not found")
		}

		c.Locals("account_id", accountID)
		return c.Next()
	}
}
