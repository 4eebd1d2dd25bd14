package cars

import "time"

// Car representa un vehículo de la colección de un usuario.
// ExternalCode es el código elegido por el usuario (único en toda la
// colección, distinto del ID generado por el sistema).
type Car struct {
	ID           string
	ExternalCode string
	Make         string
	Model        string
	Year         int
	ImageURL     string

	OwnerUserID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
