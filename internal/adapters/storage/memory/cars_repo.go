package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"car-collection/internal/domain/cars"
)

type carRepo struct {
	mu     sync.RWMutex
	byID   map[string]cars.Car
	byCode map[string]string // external_code -> id; unicidad global, no por owner
}

func NewCarRepo() cars.Repository {
	return &carRepo{
		byID:   make(map[string]cars.Car),
		byCode: make(map[string]string),
	}
}

func (r *carRepo) Create(ctx context.Context, c cars.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("car id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("car already exists")
	}
	if _, taken := r.byCode[c.ExternalCode]; taken {
		return cars.ErrConflict
	}

	r.byID[c.ID] = c
	r.byCode[c.ExternalCode] = c.ID
	return nil
}

func (r *carRepo) GetByOwner(ctx context.Context, ownerUserID, id string) (cars.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerUserID != ownerUserID {
		// Ajeno e inexistente responden igual para no filtrar existencia.
		return cars.Car{}, cars.ErrNotFound
	}
	return c, nil
}

func (r *carRepo) Update(ctx context.Context, c cars.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[c.ID]
	if !ok || current.OwnerUserID != c.OwnerUserID {
		return cars.ErrNotFound
	}

	if c.ExternalCode != current.ExternalCode {
		if holder, taken := r.byCode[c.ExternalCode]; taken && holder != c.ID {
			return cars.ErrConflict
		}
		delete(r.byCode, current.ExternalCode)
		r.byCode[c.ExternalCode] = c.ID
	}

	r.byID[c.ID] = c
	return nil
}

func (r *carRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return cars.ErrNotFound
	}

	delete(r.byID, id)
	delete(r.byCode, c.ExternalCode)
	return nil
}

func (r *carRepo) List(ctx context.Context, ownerUserID string, f cars.Filter) ([]cars.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := strings.ToLower(f.Text)

	out := make([]cars.Car, 0)
	for _, c := range r.byID {
		if c.OwnerUserID != ownerUserID {
			continue
		}
		if text != "" && !matchesText(c, text) {
			continue
		}
		if f.Make != "" && c.Make != f.Make {
			continue
		}
		out = append(out, c)
	}

	// Más nuevos primero; ID como desempate para orden estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *carRepo) DistinctMakes(ctx context.Context, ownerUserID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			seen[c.Make] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

func (r *carRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			n++
		}
	}
	return n, nil
}

func matchesText(c cars.Car, lowered string) bool {
	return strings.Contains(strings.ToLower(c.ExternalCode), lowered) ||
		strings.Contains(strings.ToLower(c.Make), lowered) ||
		strings.Contains(strings.ToLower(c.Model), lowered)
}
