package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates the email/password pair does not match a
// registered account. Wrong email and wrong password are indistinguishable.
var ErrInvalidCredentials = errors.New("incorrect email or password")

const minPasswordLength = 6

// Service manages account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Account, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return Account{}, errors.New("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return Account{}, errors.New("a valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return Account{}, errors.New("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC()
	acct := Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}

	return acct, nil
}

// Authenticate verifies the email/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(creds.Password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return acct, nil
}

// Profile fetches the account for the given identifier.
func (s *Service) Profile(ctx context.Context, id string) (Account, error) {
	return s.repo.FindByID(ctx, id)
}
