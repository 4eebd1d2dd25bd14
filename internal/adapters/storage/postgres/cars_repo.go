package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"car-collection/internal/domain/cars"

	"github.com/jackc/pgx/v5/pgconn"
)

// Esquema esperado:
//
//	CREATE TABLE cars (
//	  id            UUID PRIMARY KEY,
//	  external_code VARCHAR(50) UNIQUE NOT NULL,
//	  make          VARCHAR(100) NOT NULL,
//	  model         VARCHAR(100) NOT NULL,
//	  year          INTEGER NOT NULL,
//	  image_url     TEXT,
//	  owner_user_id UUID NOT NULL,
//	  created_at    TIMESTAMPTZ NOT NULL,
//	  updated_at    TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX idx_cars_owner ON cars(owner_user_id);
type CarsRepo struct {
	db *sql.DB
}

func NewCarsRepo(db *sql.DB) *CarsRepo {
	return &CarsRepo{db: db}
}

const carColumns = `
	id, external_code, make, model, year, image_url,
	owner_user_id, created_at, updated_at`

func (r *CarsRepo) Create(ctx context.Context, c cars.Car) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cars (
			id, external_code, make, model, year, image_url,
			owner_user_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID,
		c.ExternalCode,
		c.Make,
		c.Model,
		c.Year,
		toNullString(c.ImageURL),
		c.OwnerUserID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return cars.ErrConflict
	}
	return err
}

func (r *CarsRepo) GetByOwner(ctx context.Context, ownerUserID, id string) (cars.Car, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cars.Car{}, cars.ErrNotFound
	}

	// El WHERE por owner colapsa "ajeno" y "no existe" en el mismo resultado.
	row := r.db.QueryRowContext(ctx, `
		SELECT `+carColumns+`
		FROM cars
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	c, err := scanCar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cars.Car{}, cars.ErrNotFound
		}
		return cars.Car{}, err
	}
	return c, nil
}

func (r *CarsRepo) Update(ctx context.Context, c cars.Car) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cars
		SET
			external_code = $3,
			make = $4,
			model = $5,
			year = $6,
			image_url = $7,
			updated_at = $8
		WHERE id = $1 AND owner_user_id = $2
	`,
		c.ID,
		c.OwnerUserID,
		c.ExternalCode,
		c.Make,
		c.Model,
		c.Year,
		toNullString(c.ImageURL),
		c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return cars.ErrConflict
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cars.ErrNotFound
	}
	return nil
}

func (r *CarsRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cars
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cars.ErrNotFound
	}
	return nil
}

func (r *CarsRepo) List(ctx context.Context, ownerUserID string, f cars.Filter) ([]cars.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars
		WHERE owner_user_id = $1`
	args := []any{ownerUserID}

	if f.Text != "" {
		args = append(args, "%"+escapeLike(f.Text)+"%")
		n := len(args)
		query += fmt.Sprintf(`
		AND (external_code ILIKE $%d OR make ILIKE $%d OR model ILIKE $%d)`, n, n, n)
	}
	if f.Make != "" {
		args = append(args, f.Make)
		query += fmt.Sprintf(`
		AND make = $%d`, len(args))
	}

	query += `
		ORDER BY created_at DESC, id DESC`

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(`
		LIMIT $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cars.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CarsRepo) DistinctMakes(ctx context.Context, ownerUserID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT make
		FROM cars
		WHERE owner_user_id = $1
		ORDER BY make ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *CarsRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cars WHERE owner_user_id = $1
	`, ownerUserID).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (cars.Car, error) {
	var c cars.Car
	var imageURL sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.ExternalCode,
		&c.Make,
		&c.Model,
		&c.Year,
		&imageURL,
		&c.OwnerUserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return cars.Car{}, err
	}
	if imageURL.Valid {
		c.ImageURL = imageURL.String
	}
	return c, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// 23505 = unique_violation (índice único de external_code).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// escapeLike escapa los metacaracteres de LIKE en el término de búsqueda.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
