package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks customer passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher uses bcrypt to hash passwords.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher; cost 0 selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AdminKeyVerifier checks the X-Admin-Key header against a bcrypt hash.
// An empty hash disables the admin surface entirely.
type AdminKeyVerifier struct {
	hash []byte
}

func NewAdminKeyVerifier(hash string) *AdminKeyVerifier {
	return &AdminKeyVerifier{hash: []byte(strings.TrimSpace(hash))}
}

// Enabled reports whether an admin key hash is configured.
func (v *AdminKeyVerifier) Enabled() bool {
	return len(v.hash) > 0
}

// Verify reports whether key matches the configured hash.
func (v *AdminKeyVerifier) Verify(key string) bool {
	if !v.Enabled() || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(key)) == nil
}
