package statement

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when a withdrawal amount exceeds the
	// account's current balance. The ledger is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStatementNotFound indicates the requested statement does not exist
	// for the account. A statement owned by a different account is reported
	// the same way so statement identifiers never leak across accounts.
	ErrStatementNotFound = errors.New("statement not found")

	// ErrInvalidInput indicates the request was rejected before any lookup.
	ErrInvalidInput = errors.New("invalid input")
)

// Ledger defines the contract implemented by statement storage backends
// (e.g. Postgres). The ledger is append-only: statements are never updated
// or deleted.
type Ledger interface {
	// Append commits a statement without preconditions over the balance.
	Append(ctx context.Context, st Statement) error

	// AppendWithFunds commits a withdrawal only if the account balance at
	// commit time covers the amount; the balance check and the append are a
	// single atomic step per account. Returns ErrInsufficientFunds without
	// mutating the ledger otherwise.
	AppendWithFunds(ctx context.Context, st Statement) error

	// ListByAccount returns all statements for the account in insertion order.
	ListByAccount(ctx context.Context, accountID string) ([]Statement, error)

	// FindOperation fetches one statement by the combined
	// (account_id, statement_id) key.
	FindOperation(ctx context.Context, accountID, statementID string) (Statement, error)
}
