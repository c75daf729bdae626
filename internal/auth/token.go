package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single error returned for every verification
// failure. Callers never learn whether the signature, the expiry or the
// shape was wrong.
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies the bearer tokens issued at login. It is
// stateless; one instance is shared by every request handler.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL is the configured token lifetime; session expiry is kept consistent
// with it.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token embedding the user id, email and role ids. The jti
// claim makes every token unique even when the same user logs in twice
// within one second; the session ledger keys on the token string.
func (c *Codec) Issue(userID, email string, roleIDs []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"roles": roleIDs,
		"jti":   uuid.NewString(),
		"exp":   now.Add(c.ttl).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mapc["sub"].(string)
	email, _ := mapc["email"].(string)
	var roles []string
	if arr, ok := mapc["roles"].([]interface{}); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				roles = append(roles, s)
			}
		}
	}
	return Claims{Subject: sub, Email: email, Roles: roles}, nil
}
