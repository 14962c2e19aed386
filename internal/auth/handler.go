package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/internal/account"
)

// Handler exposes session endpoints.
type Handler struct {
	accounts *account.Service
	tokens   *Service
}

// NewHandler constructs a session HTTP handler.
func NewHandler(accounts *account.Service, tokens *Service) *Handler {
	return &Handler{accounts: accounts, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	acct, err := h.accounts.Authenticate(c.UserContext(), account.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.tokens.IssueToken(acct)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account": fiber.Map{
			"id":    acct.ID,
			"name":  acct.Name,
			"email": acct.Email,
		},
		"token":      token.AccessToken,
		"expires_in": token.ExpiresIn,
	})
}
