package gotrue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"car-collection/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token invalid")
)

// Verifier implementa auth.AuthVerifier verificando localmente el JWT
// HS256 que emite GoTrue, sin viaje de red por request.
type Verifier struct {
	secret []byte
}

func NewVerifier(jwtSecret string) (*Verifier, error) {
	jwtSecret = strings.TrimSpace(jwtSecret)
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Verifier{secret: []byte(jwtSecret)}, nil
}

type tokenClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrTokenInvalid)
	}

	name := strings.TrimSpace(claims.UserMetadata.FullName)
	if name == "" {
		name = strings.TrimSpace(claims.UserMetadata.Name)
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(claims.Email),
		Name:   name,
	}, nil
}
