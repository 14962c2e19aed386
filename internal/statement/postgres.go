package statement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook/internal/account"
)

// PostgresLedger persists statements in PostgreSQL.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

const balanceQuery = `
    SELECT COALESCE(SUM(CASE WHEN kind = 'deposit' THEN amount ELSE -amount END), 0)
    FROM statements WHERE account_id = $1`

// Append inserts a statement unconditionally.
func (l *PostgresLedger) Append(ctx context.Context, st Statement) error {
	stID, acctID, err := parseIDs(st)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(ctx, `INSERT INTO statements (id, account_id, kind, amount, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		stID, acctID, string(st.Kind), st.Amount, st.Description, st.CreatedAt.UTC(), st.UpdatedAt.UTC())
	return err
}

// AppendWithFunds inserts a withdrawal inside a transaction that locks the
// account row, so the balance check and the append are serialized per account.
func (l *PostgresLedger) AppendWithFunds(ctx context.Context, st Statement) error {
	stID, acctID, err := parseIDs(st)
	if err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var lockedID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, acctID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.ErrNotFound
		}
		return err
	}

	var balance int64
	if err := tx.QueryRow(ctx, balanceQuery, acctID).Scan(&balance); err != nil {
		return err
	}
	if st.Amount > balance {
		return ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `INSERT INTO statements (id, account_id, kind, amount, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		stID, acctID, string(st.Kind), st.Amount, st.Description, st.CreatedAt.UTC(), st.UpdatedAt.UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByAccount returns the account's statements ordered by creation.
func (l *PostgresLedger) ListByAccount(ctx context.Context, accountID string) ([]Statement, error) {
	acctID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, account.ErrNotFound
	}

	rows, err := l.db.Query(ctx, `SELECT id, account_id, kind, amount, description, created_at, updated_at
        FROM statements WHERE account_id = $1 ORDER BY created_at, id`, acctID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []Statement
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}
	return statements, rows.Err()
}

// FindOperation fetches one statement scoped to the owning account.
func (l *PostgresLedger) FindOperation(ctx context.Context, accountID, statementID string) (Statement, error) {
	acctID, err := uuid.Parse(accountID)
	if err != nil {
		return Statement{}, ErrStatementNotFound
	}
	stID, err := uuid.Parse(statementID)
	if err != nil {
		return Statement{}, ErrStatementNotFound
	}

	row := l.db.QueryRow(ctx, `SELECT id, account_id, kind, amount, description, created_at, updated_at
        FROM statements WHERE id = $1 AND account_id = $2`, stID, acctID)
	st, err := scanStatement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Statement{}, ErrStatementNotFound
		}
		return Statement{}, err
	}
	return st, nil
}

func parseIDs(st Statement) (uuid.UUID, uuid.UUID, error) {
	stID, err := uuid.Parse(st.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	acctID, err := uuid.Parse(st.AccountID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return stID, acctID, nil
}

func scanStatement(row pgx.Row) (Statement, error) {
	var (
		id        uuid.UUID
		acctID    uuid.UUID
		kind      string
		createdAt time.Time
		updatedAt time.Time
		st        Statement
	)
	if err := row.Scan(&id, &acctID, &kind, &st.Amount, &st.Description, &createdAt, &updatedAt); err != nil {
		return Statement{}, err
	}
	st.ID = id.String()
	st.AccountID = acctID.String()
	st.Kind = Kind(kind)
	st.CreatedAt = createdAt.UTC()
	st.UpdatedAt = updatedAt.UTC()
	return st, nil
}
