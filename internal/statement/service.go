package statement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook/internal/account"
	"github.com/finbook/finbook/internal/events"
)

// Service exposes the write side of the ledger and the balance/operation
// queries, backed by the account directory for existence checks.
type Service struct {
	ledger    Ledger
	accounts  account.Repository
	publisher events.Publisher
}

// NewService builds a statement service instance.
func NewService(ledger Ledger, accounts account.Repository, publisher events.Publisher) *Service {
	return &Service{ledger: ledger, accounts: accounts, publisher: publisher}
}

// CreateInput captures the data required to record a statement.
type CreateInput struct {
	AccountID   string
	Kind        string
	Amount      int64
	Description string
}

// CreateStatement validates the input, verifies the account exists and
// appends exactly one statement to the ledger. Withdrawals are committed
// atomically with the balance check; no failure path mutates the ledger.
func (s *Service) CreateStatement(ctx context.Context, input CreateInput) (Statement, error) {
	kind, ok := ParseKind(input.Kind)
	if !ok {
		return Statement{}, fmt.Errorf("%w: kind must be deposit or withdraw", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return Statement{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return Statement{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	exists, err := s.accounts.Exists(ctx, input.AccountID)
	if err != nil {
		return Statement{}, err
	}
	if !exists {
		return Statement{}, account.ErrNotFound
	}

	now := time.Now().UTC()
	st := Statement{
		ID:          uuid.New().String(),
		AccountID:   input.AccountID,
		Kind:        kind,
		Amount:      input.Amount,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch kind {
	case KindWithdraw:
		err = s.ledger.AppendWithFunds(ctx, st)
	default:
		err = s.ledger.Append(ctx, st)
	}
	if err != nil {
		return Statement{}, err
	}

	if s.publisher != nil {
		// Best effort; the statement is already committed.
		_ = s.publisher.Publish(ctx, events.TopicStatementCreated, events.StatementCreated{
			StatementID: st.ID,
			AccountID:   st.AccountID,
			Kind:        string(st.Kind),
			Amount:      st.Amount,
			Description: st.Description,
			OccurredAt:  st.CreatedAt,
		})
	}

	return st, nil
}

// GetBalance returns the derived balance and full statement history for the
// account. The balance is recomputed from the statement set on every call.
func (s *Service) GetBalance(ctx context.Context, accountID string) (BalanceSheet, error) {
	exists, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		return BalanceSheet{}, err
	}
	if !exists {
		return BalanceSheet{}, account.ErrNotFound
	}

	statements, err := s.ledger.ListByAccount(ctx, accountID)
	if err != nil {
		return BalanceSheet{}, err
	}

	var balance int64
	for _, st := range statements {
		balance += st.Signed()
	}

	return BalanceSheet{Balance: balance, Statements: statements}, nil
}

// GetStatementOperation fetches a single statement, scoped to the account so
// another account's statements are indistinguishable from missing ones.
func (s *Service) GetStatementOperation(ctx context.Context, accountID, statementID string) (Statement, error) {
	exists, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		return Statement{}, err
	}
	if !exists {
		return Statement{}, account.ErrNotFound
	}

	return s.ledger.FindOperation(ctx, accountID, statementID)
}
