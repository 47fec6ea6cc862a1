package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountd/accountd/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// secret, malformed input, rejected algorithm, or (when a TTL is configured)
// expiry. Callers must not distinguish further.
var ErrInvalidToken = errors.New("invalid token")

// Issuer signs and verifies HS256 access tokens. The secret is fixed at
// construction and never changes afterwards, so Issuer is safe for concurrent
// use. A zero ttl issues tokens without an exp claim.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token carrying the user's id and email.
func (i *Issuer) Issue(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   time.Now().Unix(),
	}
	if i.ttl > 0 {
		claims["exp"] = time.Now().Add(i.ttl).Unix()
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(i.secret)
}

// Verify parses and validates a raw token and returns its identity claims.
func (i *Issuer) Verify(raw string) (*models.Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	return &models.Claims{Subject: sub, Email: email}, nil
}
