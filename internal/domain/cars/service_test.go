package cars

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Car
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Car{}}
}

func (r *testRepo) Create(ctx context.Context, c Car) error {
	for _, other := range r.byID {
		if other.ExternalCode == c.ExternalCode {
			return ErrConflict
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByOwner(ctx context.Context, ownerUserID, id string) (Car, error) {
	c, ok := r.byID[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return Car{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) Update(ctx context.Context, c Car) error {
	current, ok := r.byID[c.ID]
	if !ok || current.OwnerUserID != c.OwnerUserID {
		return ErrNotFound
	}
	for id, other := range r.byID {
		if id != c.ID && other.ExternalCode == c.ExternalCode {
			return ErrConflict
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	c, ok := r.byID[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context, ownerUserID string, f Filter) ([]Car, error) {
	out := make([]Car, 0)
	for _, c := range r.byID {
		if c.OwnerUserID != ownerUserID {
			continue
		}
		if f.Make != "" && c.Make != f.Make {
			continue
		}
		if f.Text != "" {
			needle := strings.ToLower(f.Text)
			if !strings.Contains(strings.ToLower(c.ExternalCode), needle) &&
				!strings.Contains(strings.ToLower(c.Make), needle) &&
				!strings.Contains(strings.ToLower(c.Model), needle) {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *testRepo) DistinctMakes(ctx context.Context, ownerUserID string) ([]string, error) {
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

func (r *testRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	n := 0
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			n++
		}
	}
	return n, nil
}

// -------------------------
// Tests
// -------------------------

func validInput() Input {
	return Input{
		ExternalCode: "civic-2020",
		Make:         "Honda",
		Model:        "Civic",
		Year:         2020,
	}
}

func TestService_Create_StampsOwnerAndTimestamps(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected generated id")
	}
	if c.OwnerUserID != "user-1" {
		t.Fatalf("expected owner user-1, got %q", c.OwnerUserID)
	}
	if c.CreatedAt != now || c.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt = now")
	}

	got, err := svc.Get(context.Background(), "user-1", c.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ExternalCode != "civic-2020" || got.Make != "Honda" {
		t.Fatalf("roundtrip mismatch: %#v", got)
	}
}

func TestService_Create_TrimsFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "user-1", Input{
		ExternalCode: "  nsx-91  ",
		Make:         " Honda ",
		Model:        " NSX ",
		Year:         1991,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.ExternalCode != "nsx-91" || c.Make != "Honda" || c.Model != "NSX" {
		t.Fatalf("expected trimmed fields, got %#v", c)
	}
}

func TestService_Create_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	cases := map[string]Input{
		"empty code":      {ExternalCode: "", Make: "Honda", Model: "Civic", Year: 2020},
		"code with space": {ExternalCode: "has space", Make: "Honda", Model: "Civic", Year: 2020},
		"code with tilde": {ExternalCode: "códi-go", Make: "Honda", Model: "Civic", Year: 2020},
		"make 1 rune":     {ExternalCode: "c-1", Make: "H", Model: "Civic", Year: 2020},
		"empty model":     {ExternalCode: "c-2", Make: "Honda", Model: "   ", Year: 2020},
		"year 1899":       {ExternalCode: "c-3", Make: "Honda", Model: "Civic", Year: 1899},
		"year now+2":      {ExternalCode: "c-4", Make: "Honda", Model: "Civic", Year: now.Year() + 2},
	}
	for name, in := range cases {
		if _, err := svc.Create(context.Background(), "user-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	// Bordes válidos: 1900, año actual + 1, marca de 2 runas.
	ok := []Input{
		{ExternalCode: "b-1", Make: "Ho", Model: "Civic", Year: 1900},
		{ExternalCode: "b-2", Make: "Honda", Model: "Civic", Year: now.Year() + 1},
	}
	for _, in := range ok {
		if _, err := svc.Create(context.Background(), "user-1", in); err != nil {
			t.Fatalf("boundary input %q should pass, got %v", in.ExternalCode, err)
		}
	}
}

func TestService_Create_MissingOwner(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "  ", validInput()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
}

func TestService_Create_DuplicateCode(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "user-1", validInput()); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	// El código es único global: choca incluso desde otro owner.
	_, err := svc.Create(context.Background(), "user-2", validInput())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_Update_RefreshesUpdatedAtOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(10 * time.Minute)

	svc.now = func() time.Time { return now1 }
	c, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	in := validInput()
	in.Model = "Civic Type R"
	in.Year = 2021
	updated, err := svc.Update(context.Background(), "user-1", c.ID, in)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.ID != c.ID || updated.OwnerUserID != c.OwnerUserID {
		t.Fatalf("Update must not change id/owner")
	}
	if updated.CreatedAt != now1 {
		t.Fatalf("Update must not change created_at")
	}
	if updated.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt refreshed to now2, got %s", updated.UpdatedAt)
	}
	if updated.Model != "Civic Type R" || updated.Year != 2021 {
		t.Fatalf("update not applied: %#v", updated)
	}
}

func TestService_Update_InvalidInputKeepsRecord(t *testing.T) {
	svc := NewService(newTestRepo())

	c, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	in := validInput()
	in.Year = 1800
	if _, err := svc.Update(context.Background(), "user-1", c.ID, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := svc.Get(context.Background(), "user-1", c.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Year != 2020 {
		t.Fatalf("failed update must not modify the record, got year %d", got.Year)
	}
}

func TestService_OwnerScoping_OtherOwnerLooksLikeMissing(t *testing.T) {
	svc := NewService(newTestRepo())

	c, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-2", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get by other owner: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "user-2", c.ID, validInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update by other owner: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-2", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete by other owner: expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_NotIdempotent(t *testing.T) {
	svc := NewService(newTestRepo())

	c, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", c.ID); err != nil {
		t.Fatalf("first Delete error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestService_List_FilterAndOrder(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	seed := []struct {
		in  Input
		at  time.Time
		own string
	}{
		{Input{ExternalCode: "civic-1", Make: "Honda", Model: "Civic", Year: 2018}, base, "user-1"},
		{Input{ExternalCode: "corolla-1", Make: "Toyota", Model: "Corolla", Year: 2019}, base.Add(time.Minute), "user-1"},
		{Input{ExternalCode: "gt86-1", Make: "Toyota", Model: "GT86", Year: 2015}, base.Add(2 * time.Minute), "user-1"},
		{Input{ExternalCode: "civic-2", Make: "Honda", Model: "Civic", Year: 2020}, base, "user-2"},
	}
	for _, s := range seed {
		svc.now = func() time.Time { return s.at }
		if _, err := svc.Create(context.Background(), s.own, s.in); err != nil {
			t.Fatalf("seed %s: %v", s.in.ExternalCode, err)
		}
	}

	// Sin filtro: sólo los del owner, más nuevo primero.
	all, err := svc.List(context.Background(), "user-1", Filter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 || all[0].ExternalCode != "gt86-1" || all[2].ExternalCode != "civic-1" {
		t.Fatalf("expected [gt86-1 corolla-1 civic-1], got %v", codes(all))
	}

	// Texto case-insensitive sobre código/marca/modelo.
	byText, err := svc.List(context.Background(), "user-1", Filter{Text: " CIVIC "})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(byText) != 1 || byText[0].ExternalCode != "civic-1" {
		t.Fatalf("text filter: expected [civic-1], got %v", codes(byText))
	}

	// Texto + marca se combinan con AND.
	combined, err := svc.List(context.Background(), "user-1", Filter{Text: "co", Make: "Toyota"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(combined) != 1 || combined[0].ExternalCode != "corolla-1" {
		t.Fatalf("combined filter: expected [corolla-1], got %v", codes(combined))
	}

	// Limit corta después de ordenar.
	limited, err := svc.List(context.Background(), "user-1", Filter{Limit: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 2 || limited[0].ExternalCode != "gt86-1" {
		t.Fatalf("limit: expected [gt86-1 corolla-1], got %v", codes(limited))
	}
}

func TestService_DistinctMakesAndCount(t *testing.T) {
	svc := NewService(newTestRepo())

	for _, in := range []Input{
		{ExternalCode: "a-1", Make: "Toyota", Model: "Corolla", Year: 2019},
		{ExternalCode: "a-2", Make: "Honda", Model: "Civic", Year: 2018},
		{ExternalCode: "a-3", Make: "Toyota", Model: "GT86", Year: 2015},
	} {
		if _, err := svc.Create(context.Background(), "user-1", in); err != nil {
			t.Fatalf("seed %s: %v", in.ExternalCode, err)
		}
	}

	makes, err := svc.DistinctMakes(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("DistinctMakes error: %v", err)
	}
	if len(makes) != 2 || makes[0] != "Honda" || makes[1] != "Toyota" {
		t.Fatalf("expected [Honda Toyota], got %v", makes)
	}

	n, err := svc.Count(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected count 3, got %d", n)
	}

	n, err = svc.Count(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected count 0 for other owner, got %d", n)
	}
}

func codes(cs []Car) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ExternalCode)
	}
	return out
}
