package sessions

import "time"

// State es el estado de una sesión. Transiciones válidas:
// Unauthenticated -> Pending (sign-in iniciado)
// Pending         -> Authenticated (callback del proveedor OK)
// Authenticated   -> Unauthenticated (sign-out o token vencido)
// Ninguna otra.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StatePending         State = "pending"
	StateAuthenticated   State = "authenticated"
)

// Session es el contexto de identidad explícito que viaja con cada
// llamada (no hay usuario "ambiente" global).
type Session struct {
	ID    string
	State State

	UserID string
	Email  string
	Name   string

	AccessToken string
	ExpiresAt   time.Time
}

// Event notifica un cambio de estado de sesión a los suscriptores.
type Event struct {
	SessionID string
	State     State
}
