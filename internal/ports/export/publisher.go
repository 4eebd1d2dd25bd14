package export

import (
	"context"
	"errors"
)

var (
	// ErrUpstream indica una falla del servicio externo de export.
	ErrUpstream = errors.New("export upstream failure")
)

// Publisher sube (create-or-update) el JSON de un registro a un servicio
// externo de archivos, identificado por su external_code. Fire-and-forget:
// un intento, sin retry; el caller decide cómo reportar la falla.
type Publisher interface {
	Publish(ctx context.Context, externalCode string, payload []byte, message string) error
}
