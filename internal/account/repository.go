package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the referenced account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrEmailTaken indicates another account already owns the email address.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists accounts.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	FindByID(ctx context.Context, id string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. Email uniqueness is enforced by the unique
// index on accounts.email.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) error {
	acctID, err := uuid.Parse(acct.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, name, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		acctID, acct.Name, acct.Email, acct.PasswordHash, acct.CreatedAt.UTC(), acct.UpdatedAt.UTC())
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// FindByID fetches an account by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, created_at, updated_at
        FROM accounts WHERE id = $1`, acctID)
	return scanAccount(row)
}

// FindByEmail fetches an account by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, created_at, updated_at
        FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// Exists reports whether an account with the identifier exists.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, acctID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		acct      Account
	)
	if err := row.Scan(&id, &acct.Name, &acct.Email, &acct.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acct.ID = id.String()
	acct.CreatedAt = createdAt.UTC()
	acct.UpdatedAt = updatedAt.UTC()
	return acct, nil
}

func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
