package cars

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("car not found")
	ErrConflict     = errors.New("external code already in use")
)

// external_code: letras, dígitos, guión y guión bajo.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const minYear = 1900

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Input son los campos mutables de un car. Create y Update (replace
// completo) usan el mismo set.
type Input struct {
	ExternalCode string
	Make         string
	Model        string
	Year         int
	ImageURL     string
}

func (in Input) normalized() Input {
	in.ExternalCode = strings.TrimSpace(in.ExternalCode)
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

// validate aplica las reglas del modelo. El año admite hasta el año
// calendario siguiente (modelos que salen antes de su año).
func validate(in Input, now time.Time) error {
	if in.ExternalCode == "" {
		return fmt.Errorf("%w: external_code is required", ErrInvalidInput)
	}
	if !codePattern.MatchString(in.ExternalCode) {
		return fmt.Errorf("%w: external_code may only contain letters, digits, hyphens and underscores", ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Make) < 2 {
		return fmt.Errorf("%w: make must be at least 2 characters", ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Model) < 1 {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if in.Year < minYear || in.Year > now.Year()+1 {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minYear, now.Year()+1)
	}
	return nil
}

// Create valida, estampa owner/timestamps y persiste. El owner viene de
// la sesión del caller, nunca del body.
func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Car, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Car{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	in = in.normalized()
	now := s.now()
	if err := validate(in, now); err != nil {
		return Car{}, err
	}

	c := Car{
		ID:           uuid.NewString(),
		ExternalCode: in.ExternalCode,
		Make:         in.Make,
		Model:        in.Model,
		Year:         in.Year,
		ImageURL:     in.ImageURL,
		OwnerUserID:  strings.TrimSpace(ownerUserID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Car{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, ownerUserID, id string) (Car, error) {
	return s.repo.GetByOwner(ctx, ownerUserID, id)
}

// Update reemplaza todos los campos mutables, re-valida y refresca
// updated_at. ID, owner y created_at no cambian nunca.
func (s *Service) Update(ctx context.Context, ownerUserID, id string, in Input) (Car, error) {
	current, err := s.repo.GetByOwner(ctx, ownerUserID, id)
	if err != nil {
		return Car{}, err
	}

	in = in.normalized()
	now := s.now()
	if err := validate(in, now); err != nil {
		return Car{}, err
	}

	updated := current
	updated.ExternalCode = in.ExternalCode
	updated.Make = in.Make
	updated.Model = in.Model
	updated.Year = in.Year
	updated.ImageURL = in.ImageURL
	updated.UpdatedAt = now

	if err := s.repo.Update(ctx, updated); err != nil {
		return Car{}, err
	}
	return updated, nil
}

// Delete es hard delete y NO es idempotente: un segundo Delete del mismo
// id devuelve ErrNotFound.
func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	return s.repo.Delete(ctx, ownerUserID, id)
}

func (s *Service) List(ctx context.Context, ownerUserID string, f Filter) ([]Car, error) {
	f.Text = strings.TrimSpace(f.Text)
	f.Make = strings.TrimSpace(f.Make)
	if f.Limit < 0 {
		f.Limit = 0
	}
	return s.repo.List(ctx, ownerUserID, f)
}

func (s *Service) DistinctMakes(ctx context.Context, ownerUserID string) ([]string, error) {
	return s.repo.DistinctMakes(ctx, ownerUserID)
}

func (s *Service) Count(ctx context.Context, ownerUserID string) (int, error) {
	return s.repo.CountByOwner(ctx, ownerUserID)
}
