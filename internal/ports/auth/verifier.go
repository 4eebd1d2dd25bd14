package auth

import "context"

// AuthVerifier verifica un token por request y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
