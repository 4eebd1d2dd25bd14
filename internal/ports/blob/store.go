package blob

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrStorage indica una falla del backend de objetos (upload no efectuado).
	ErrStorage = errors.New("blob storage failure")
)

// Store guarda un objeto bajo un key scoped por owner y devuelve una URL pública.
// La validación de tamaño/MIME ocurre ANTES de llamar acá (domain/images);
// el adapter asume contenido ya aceptado.
type Store interface {
	Upload(ctx context.Context, ownerID string, content io.Reader, size int64, contentType, fileName string) (string, error)
}
