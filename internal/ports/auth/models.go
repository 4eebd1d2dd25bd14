package auth

import "time"

// Claims representa la identidad extraída del token del proveedor.
type Claims struct {
	UserID string
	Email  string
	Name   string
}

// Token es el resultado de un intercambio de código OAuth.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}
