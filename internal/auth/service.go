package auth

import (
	"errors"
	"time"

	"github.com/finbook/finbook/internal/account"
	"github.com/finbook/finbook/internal/config"
)

// Service issues and validates access tokens for authenticated accounts.
type Service struct {
	cfg config.Config
}

// NewService creates an auth service from runtime configuration.
func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// IssueToken signs an access token for the account.
func (s *Service) IssueToken(acct account.Account) (Token, error) {
	now := time.Now()
	exp := now.Add(s.cfg.AccessTokenTTL)
	claims := map[string]any{
		"sub":   acct.ID,
		"email": acct.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(s.cfg.JWTSecret))
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, ExpiresIn: int64(s.cfg.AccessTokenTTL.Seconds())}, nil
}

// Verify checks the token signature and expiry and returns the account id.
func (s *Service) Verify(token string) (string, error) {
	claims, err := ParseAndVerifyHS256(token, []byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}
	exp, _ := claims["exp"].(float64)
	if exp != 0 && time.Now().Unix() > int64(exp) {
		return "", errors.New("token expired")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("missing subject")
	}
	return sub, nil
}
