package statement

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/internal/account"
)

// Handler exposes statement HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a statement HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Kind        string `json:"kind"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type statementResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(st Statement) statementResponse {
	return statementResponse{
		ID:          st.ID,
		AccountID:   st.AccountID,
		Kind:        string(st.Kind),
		Amount:      st.Amount,
		Description: st.Description,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	}
}

// Create records a deposit or withdrawal for the authenticated account.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	accountID, _ := c.Locals("account_id").(string)

	st, err := h.service.CreateStatement(c.UserContext(), CreateInput{
		AccountID:   accountID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return mapError(err)
	}

	return c.Status(http.StatusCreated).JSON(toResponse(st))
}

// Balance returns the derived balance with the statement history.
func (h *Handler) Balance(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)

	sheet, err := h.service.GetBalance(c.UserContext(), accountID)
	if err != nil {
		return mapError(err)
	}

	statements := make([]statementResponse, 0, len(sheet.Statements))
	for _, st := range sheet.Statements {
		statements = append(statements, toResponse(st))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"balance":    sheet.Balance,
		"statements": statements,
	})
}

// Operation returns a single statement owned by the authenticated account.
func (h *Handler) Operation(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	statementID := c.Params("statementId")

	st, err := h.service.GetStatementOperation(c.UserContext(), accountID, statementID)
	if err != nil {
		return mapError(err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(st))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, "insufficient funds")
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "account not found")
	case errors.Is(err, ErrStatementNotFound):
		return fiber.NewError(http.StatusNotFound, "statement not found")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
