package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidToken is returned for malformed or forged tokens.
	ErrInvalidToken = errors.New("invalid auth token")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("auth token expired")
)

// Strategy issues and validates customer bearer tokens.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
}

// Options tune token issuance.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}
