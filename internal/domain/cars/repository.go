package cars

import "context"

// Filter acota List. Text matchea case-insensitive como substring sobre
// external_code, make o model (OR entre los tres). Make es match exacto.
// Ambos combinan con AND. Limit 0 => sin límite.
type Filter struct {
	Text  string
	Make  string
	Limit int
}

// Repository es el contrato de persistencia de cars. Todas las lecturas
// y mutaciones van scoped por owner: un registro de otro usuario es
// indistinguible de uno inexistente (ErrNotFound en ambos casos).
type Repository interface {
	Create(ctx context.Context, c Car) error
	GetByOwner(ctx context.Context, ownerUserID, id string) (Car, error)
	Update(ctx context.Context, c Car) error
	Delete(ctx context.Context, ownerUserID, id string) error

	// List devuelve los cars del owner que pasan el filtro,
	// ordenados por created_at descendente (más nuevos primero).
	List(ctx context.Context, ownerUserID string, f Filter) ([]Car, error)

	// DistinctMakes devuelve las marcas del owner, orden lexicográfico asc.
	DistinctMakes(ctx context.Context, ownerUserID string) ([]string, error)

	CountByOwner(ctx context.Context, ownerUserID string) (int, error)
}
