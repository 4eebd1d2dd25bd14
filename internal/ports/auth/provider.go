package auth

import "context"

// Provider maneja el flujo OAuth contra el proveedor de identidad externo.
// AuthorizeURL no bloquea; Exchange y Revoke van por red.
type Provider interface {
	// AuthorizeURL arma la URL de redirect del proveedor para iniciar sign-in.
	AuthorizeURL(state string) string

	// Exchange canjea el código del callback por claims + token de acceso.
	Exchange(ctx context.Context, code string) (Claims, Token, error)

	// Revoke invalida el token en el proveedor (single attempt, sin retry).
	Revoke(ctx context.Context, accessToken string) error
}
