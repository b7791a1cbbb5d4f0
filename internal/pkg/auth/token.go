package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

const defaultTokenTTL = 24 * time.Hour

var tokenEncoding = base64.RawURLEncoding

// SignedTokenStrategy issues "<claims>.<signature>" tokens where claims is
// base64url("<user id>:<unix expiry>") and signature is HMAC-SHA256 over claims.
type SignedTokenStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedTokenStrategy builds a strategy keyed by secret.
func NewSignedTokenStrategy(secret string, opts Options) *SignedTokenStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SignedTokenStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

func (s *SignedTokenStrategy) IssueToken(userID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	claims := tokenEncoding.EncodeToString([]byte(strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(expires, 10)))
	return claims + "." + s.sign(claims), nil
}

func (s *SignedTokenStrategy) ParseToken(token string) (int64, error) {
	claims, sig, ok := strings.Cut(token, ".")
	if !ok || claims == "" || sig == "" {
		return 0, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(claims))) {
		return 0, ErrInvalidToken
	}

	raw, err := tokenEncoding.DecodeString(claims)
	if err != nil {
		return 0, ErrInvalidToken
	}
	idPart, expPart, ok := strings.Cut(string(raw), ":")
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	expires, err := strconv.ParseInt(expPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if !s.now().Before(time.Unix(expires, 0)) {
		return 0, ErrTokenExpired
	}
	return userID, nil
}

func (s *SignedTokenStrategy) sign(claims string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(claims))
	return tokenEncoding.EncodeToString(mac.Sum(nil))
}
