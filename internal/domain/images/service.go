package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"car-collection/internal/ports/blob"
)

const MaxSize = 5 * 1024 * 1024 // 5 MiB

var (
	ErrTooLarge    = errors.New("image exceeds the 5MB limit")
	ErrInvalidType = errors.New("only JPEG and PNG images are allowed")
)

// image/jpg no es un MIME registrado pero los browsers lo mandan igual.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

type Service struct {
	store blob.Store
}

func NewService(store blob.Store) *Service {
	return &Service{store: store}
}

// Upload valida tamaño y MIME ANTES de tocar el store: un archivo
// rechazado nunca genera tráfico al backend de objetos.
func (s *Service) Upload(ctx context.Context, ownerID string, content io.Reader, size int64, contentType, fileName string) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", errors.New("owner is required")
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: unknown or empty content size", ErrInvalidType)
	}
	if size > MaxSize {
		return "", ErrTooLarge
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := allowedContentTypes[ct]; !ok {
		return "", ErrInvalidType
	}

	return s.store.Upload(ctx, ownerID, content, size, ct, fileName)
}
