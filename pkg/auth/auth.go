// Package auth carries the authenticated caller through a request context.
// The identity provider itself lives outside this service; tokens are HS256
// JWTs signed with a shared secret, or a trusted gateway forwards headers.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	XUserEmailHeader = "X-User-Email"
	XUserNameHeader  = "X-User-Name"
	XUserSubHeader   = "X-User-Sub"
)

var (
	ErrNoPrincipal  = errors.New("no authenticated principal")
	ErrInvalidToken = errors.New("invalid token")
)

type Config struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	// TrustHeaders accepts identity headers set by a fronting gateway.
	TrustHeaders bool `envconfig:"AUTH_TRUST_HEADERS" default:"false"`
}

// Principal is who the identity provider says the caller is.
type Principal struct {
	Subject string
	Email   string
	Name    string
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func NewToken(secret []byte, p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(secret []byte, tokenStr string) (Principal, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, errors.Wrap(ErrInvalidToken, errString(err))
	}
	if claims.Email == "" {
		return Principal{}, errors.Wrap(ErrInvalidToken, "email claim is empty")
	}
	return Principal{
		Subject: claims.Subject,
		Email:   strings.ToLower(strings.TrimSpace(claims.Email)),
		Name:    claims.Name,
	}, nil
}

func errString(err error) string {
	if err == nil {
		return "token is not valid"
	}
	return err.Error()
}

type ctxKey struct{}

func SetAuthContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func GetPrincipal(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok || p.Email == "" {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}
