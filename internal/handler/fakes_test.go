package handler

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/dealership-inventory/internal/config"
	"github.com/iliyamo/dealership-inventory/internal/model"
	"github.com/iliyamo/dealership-inventory/internal/queue"
	"github.com/iliyamo/dealership-inventory/internal/repository"
)

// In-memory stores satisfying the handler interfaces, so the handlers can
// be exercised without MySQL.  Behavior mirrors the repositories: same
// sentinel errors, same lowercasing, same new-account role.

type fakeAccounts struct {
	nextID   uint64
	accounts map[uint64]model.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{nextID: 1, accounts: map[uint64]model.Account{}}
}

func (f *fakeAccounts) byEmail(email string) (model.Account, bool) {
	email = strings.ToLower(email)
	for _, a := range f.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return model.Account{}, false
}

func (f *fakeAccounts) Create(_ context.Context, firstName, lastName, email, passwordHash string) (uint64, error) {
	if _, ok := f.byEmail(email); ok {
		return 0, repository.ErrEmailExists
	}
	id := f.nextID
	f.nextID++
	f.accounts[id] = model.Account{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         model.RoleClient,
	}
	return id, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (model.Account, error) {
	if a, ok := f.byEmail(email); ok {
		return a, nil
	}
	return model.Account{}, repository.ErrAccountNotFound
}

func (f *fakeAccounts) GetByID(_ context.Context, id uint64) (model.Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return model.Account{}, repository.ErrAccountNotFound
}

func (f *fakeAccounts) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail(email)
	return ok, nil
}

func (f *fakeAccounts) ListAll(_ context.Context) ([]model.Account, error) {
	out := make([]model.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		a.PasswordHash = ""
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, id uint64, firstName, lastName, email string) error {
	a, ok := f.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.FirstName, a.LastName, a.Email = firstName, lastName, strings.ToLower(email)
	f.accounts[id] = a
	return nil
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	a, ok := f.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	f.accounts[id] = a
	return nil
}

func (f *fakeAccounts) UpdateRoleByEmail(_ context.Context, email string, role model.Role) error {
	a, ok := f.byEmail(email)
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.Role = role
	f.accounts[a.ID] = a
	return nil
}

type fakeClassifications struct {
	nextID uint64
	items  map[uint64]model.Classification
}

func newFakeClassifications() *fakeClassifications {
	return &fakeClassifications{nextID: 1, items: map[uint64]model.Classification{}}
}

func (f *fakeClassifications) Create(_ context.Context, c *model.Classification) error {
	for _, existing := range f.items {
		if existing.Name == c.Name {
			return repository.ErrClassificationExists
		}
	}
	c.ID = f.nextID
	f.nextID++
	f.items[c.ID] = *c
	return nil
}

func (f *fakeClassifications) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeClassifications) all() []model.Classification {
	out := make([]model.Classification, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type fakeVehicles struct {
	nextID uint64
	items  map[uint64]model.Vehicle
}

func newFakeVehicles() *fakeVehicles {
	return &fakeVehicles{nextID: 1, items: map[uint64]model.Vehicle{}}
}

func (f *fakeVehicles) Create(_ context.Context, v *model.Vehicle) error {
	v.ID = f.nextID
	f.nextID++
	f.items[v.ID] = *v
	return nil
}

func (f *fakeVehicles) GetByID(_ context.Context, id uint64) (model.Vehicle, error) {
	if v, ok := f.items[id]; ok {
		return v, nil
	}
	return model.Vehicle{}, repository.ErrVehicleNotFound
}

func (f *fakeVehicles) ListByClassification(_ context.Context, classificationID uint64) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range f.items {
		if v.ClassificationID == classificationID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeVehicles) Update(_ context.Context, v *model.Vehicle) error {
	if _, ok := f.items[v.ID]; !ok {
		return repository.ErrVehicleNotFound
	}
	f.items[v.ID] = *v
	return nil
}

func (f *fakeVehicles) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrVehicleNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeNav reads straight through to the classification store and counts
// invalidations.
type fakeNav struct {
	store       *fakeClassifications
	invalidated int
}

func (f *fakeNav) List(context.Context) []model.Classification { return f.store.all() }
func (f *fakeNav) Invalidate(context.Context)                  { f.invalidated++ }

// capturePublisher records every event the handlers fire.
type capturePublisher struct {
	events []queue.InventoryEvent
}

func (p *capturePublisher) publish(_ context.Context, ev queue.InventoryEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Env:           "dev",
		JWTSecret:     "handler-test-secret",
		SessionTTLMin: 60,
		BcryptCost:    4, // keep the hashing fast under test
	}
}

func jsonContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testLogger() zerolog.Logger { return zerolog.Nop() }
