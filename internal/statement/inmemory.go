package statement

import (
	"context"
	"sync"
)

type inMemoryLedger struct {
	mu         sync.RWMutex
	statements map[string][]Statement
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit
// tests and broker-less development runs.
func NewInMemory() Ledger {
	return &inMemoryLedger{statements: make(map[string][]Statement)}
}

func (l *inMemoryLedger) Append(_ context.Context, st Statement) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statements[st.AccountID] = append(l.statements[st.AccountID], st)
	return nil
}

func (l *inMemoryLedger) AppendWithFunds(_ context.Context, st Statement) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var balance int64
	for _, existing := range l.statements[st.AccountID] {
		balance += existing.Signed()
	}
	if st.Amount > balance {
		return ErrInsufficientFunds
	}

	l.statements[st.AccountID] = append(l.statements[st.AccountID], st)
	return nil
}

func (l *inMemoryLedger) ListByAccount(_ context.Context, accountID string) ([]Statement, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stored := l.statements[accountID]
	statements := make([]Statement, len(stored))
	copy(statements, stored)
	return statements, nil
}

func (l *inMemoryLedger) FindOperation(_ context.Context, accountID, statementID string) (Statement, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, st := range l.statements[accountID] {
		if st.ID == statementID {
			return st, nil
		}
	}
	return Statement{}, ErrStatementNotFound
}
