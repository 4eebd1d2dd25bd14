package memory

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"car-collection/internal/ports/blob"

	"github.com/google/uuid"
)

// Store es un blob.Store in-memory para dev y tests. Las URLs que
// devuelve no resuelven por red; sólo identifican el objeto guardado.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte // url -> contenido
}

func NewStore() *Store {
	return &Store{objects: make(map[string][]byte)}
}

func (s *Store) Upload(ctx context.Context, ownerID string, content io.Reader, size int64, contentType, fileName string) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("%w: read content: %v", blob.ErrStorage, err)
	}

	key := fmt.Sprintf("%s/%s%s", ownerID, uuid.NewString(), path.Ext(fileName))
	url := "memory://car-images/" + key

	s.mu.Lock()
	s.objects[url] = data
	s.mu.Unlock()

	return url, nil
}

// Has reporta si existe un objeto con esa URL (para asserts en tests).
func (s *Store) Has(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[url]
	return ok
}

// Len devuelve la cantidad de objetos guardados.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
