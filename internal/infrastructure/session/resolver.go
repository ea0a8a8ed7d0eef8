// Package session resolves the identity that scopes the engine: which
// account's history to load and which update topic to subscribe to.
package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
)

// Claims represents the session token claims.
type Claims struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Balance   string `json:"balance"`
	jwt.RegisteredClaims
}

// TokenResolver resolves the session from a signed JWT issued by the
// identity provider.
type TokenResolver struct {
	secretKey []byte
	token     string
}

// NewTokenResolver creates a new TokenResolver for a fixed token.
func NewTokenResolver(secretKey, token string) *TokenResolver {
	return &TokenResolver{
		secretKey: []byte(secretKey),
		token:     token,
	}
}

// Resolve verifies the token and extracts the session.
func (r *TokenResolver) Resolve(ctx context.Context) (*domain.Session, error) {
	token, err := jwt.ParseWithClaims(
		r.token,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return r.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrNoSession)
	}

	if claims.AccountID == "" {
		return nil, fmt.Errorf("%w: token carries no account", domain.ErrNoSession)
	}

	session := domain.Session{
		AccountID: claims.AccountID,
		Name:      claims.Name,
		Email:     claims.Email,
	}

	if claims.Balance != "" {
		balance, err := decimal.NewFromString(claims.Balance)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed balance claim: %w", domain.ErrNoSession, err)
		}
		session.Balance = balance
	}

	return &session, nil
}

// StaticResolver resolves a fixed account. Used when the identity provider
// is out of the picture, such as local development and the CLI.
type StaticResolver struct {
	session domain.Session
}

// NewStaticResolver creates a resolver that always answers with the given
// account.
func NewStaticResolver(accountID string) *StaticResolver {
	return &StaticResolver{
		session: domain.Session{AccountID: accountID},
	}
}

// Resolve returns the fixed session.
func (r *StaticResolver) Resolve(ctx context.Context) (*domain.Session, error) {
	if r.session.AccountID == "" {
		return nil, domain.ErrNoSession
	}

	session := r.session

	return &session, nil
}
