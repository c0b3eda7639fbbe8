// Package identity resolves the active user identity from a signed
// session token.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTProvider holds one session token and reports the identity it names.
// An invalid or expired token behaves exactly like a logged-out session.
type JWTProvider struct {
	secret []byte
	token  string
}

func New(cfg Config) *JWTProvider {
	return &JWTProvider{
		secret: []byte(cfg.Secret),
		token:  cfg.Token,
	}
}

func (p *JWTProvider) CurrentIdentity() (string, bool) {
	if p.token == "" {
		return "", false
	}

	sub, err := ParseSubject(p.secret, p.token)
	if err != nil {
		return "", false
	}

	return sub, true
}

func (p *JWTProvider) LoggedIn() bool {
	_, ok := p.CurrentIdentity()

	return ok
}

// ParseSubject verifies an HS256 session token and returns its subject.
func ParseSubject(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}

	return sub, nil
}
