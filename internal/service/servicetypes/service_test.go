package servicetypes

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtorque/appointment-service/internal/domain"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	byID   map[string]*domain.ServiceType
	nextID int
}

func newFakeRepo(types ...*domain.ServiceType) *fakeRepo {
	repo := &fakeRepo{byID: map[string]*domain.ServiceType{}}
	for _, st := range types {
		repo.byID[st.ID] = st
	}
	return repo
}

func (f *fakeRepo) Create(_ context.Context, st *domain.ServiceType) (*domain.ServiceType, error) {
	for _, existing := range f.byID {
		if existing.Name == st.Name {
			return nil, servicetypeRepo.ErrServiceTypeExists
		}
	}
	f.nextID++
	created := *st
	created.ID = fmt.Sprintf("st-%d", f.nextID)
	f.byID[created.ID] = &created
	result := created
	return &result, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.ServiceType, error) {
	st, ok := f.byID[id]
	if !ok {
		return nil, servicetypeRepo.ErrServiceTypeNotFound
	}
	copied := *st
	return &copied, nil
}

func (f *fakeRepo) GetByName(_ context.Context, name string) (*domain.ServiceType, error) {
	for _, st := range f.byID {
		if st.Name == name {
			copied := *st
			return &copied, nil
		}
	}
	return nil, servicetypeRepo.ErrServiceTypeNotFound
}

func (f *fakeRepo) ListActive(_ context.Context) ([]*domain.ServiceType, error) {
	result := make([]*domain.ServiceType, 0)
	for _, st := range f.byID {
		if st.Active {
			result = append(result, st)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]*domain.ServiceType, error) {
	result := make([]*domain.ServiceType, 0)
	for _, st := range f.byID {
		result = append(result, st)
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, st *domain.ServiceType) error {
	if _, ok := f.byID[st.ID]; !ok {
		return servicetypeRepo.ErrServiceTypeNotFound
	}
	copied := *st
	f.byID[st.ID] = &copied
	return nil
}

func (f *fakeRepo) Deactivate(_ context.Context, id string) error {
	st, ok := f.byID[id]
	if !ok {
		return servicetypeRepo.ErrServiceTypeNotFound
	}
	st.Active = false
	return nil
}

var (
	admin    = domain.Principal{UserID: "admin-1", Roles: []domain.Role{domain.RoleAdmin}}
	customer = domain.Principal{UserID: "customer-1", Roles: []domain.Role{domain.RoleCustomer}}
)

func oilChange() *domain.ServiceType {
	return &domain.ServiceType{
		ID:                       "st-oil",
		Name:                     "Oil Change",
		Category:                 "MAINTENANCE",
		BasePrice:                49.99,
		EstimatedDurationMinutes: 30,
		Active:                   true,
	}
}

func TestListActive_SkipsDeactivated(t *testing.T) {
	retired := oilChange()
	retired.ID = "st-retired"
	retired.Name = "Carburetor Tuning"
	retired.Active = false

	svc := NewService(newFakeRepo(oilChange(), retired), nopLogger{})

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, got.ServiceTypes, 1)
	assert.Equal(t, "Oil Change", got.ServiceTypes[0].Name)
}

func TestListAll_AdminOnly(t *testing.T) {
	svc := NewService(newFakeRepo(oilChange()), nopLogger{})

	_, err := svc.ListAll(context.Background(), customer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	got, err := svc.ListAll(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, got.ServiceTypes, 1)
}

func TestCreate(t *testing.T) {
	t.Run("admin creates", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		got, err := svc.Create(context.Background(), &CreateServiceTypeRequest{
			Name:                     "  Wheel Alignment ",
			Category:                 "MAINTENANCE",
			BasePrice:                79.99,
			EstimatedDurationMinutes: 60,
		}, admin)
		require.NoError(t, err)

		assert.Equal(t, "Wheel Alignment", got.Name)
		assert.True(t, got.Active)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.Create(context.Background(), &CreateServiceTypeRequest{
			Name: "X", Category: "Y", BasePrice: 1, EstimatedDurationMinutes: 1,
		}, customer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := NewService(newFakeRepo(oilChange()), nopLogger{})

		_, err := svc.Create(context.Background(), &CreateServiceTypeRequest{
			Name: "Oil Change", Category: "MAINTENANCE", BasePrice: 1, EstimatedDurationMinutes: 30,
		}, admin)
		assert.ErrorIs(t, err, ErrServiceTypeExists)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		tests := []CreateServiceTypeRequest{
			{Name: "", Category: "C", BasePrice: 1, EstimatedDurationMinutes: 30},
			{Name: "N", Category: " ", BasePrice: 1, EstimatedDurationMinutes: 30},
			{Name: "N", Category: "C", BasePrice: -1, EstimatedDurationMinutes: 30},
			{Name: "N", Category: "C", BasePrice: 1, EstimatedDurationMinutes: 0},
		}
		for _, req := range tests {
			_, err := svc.Create(context.Background(), &req, admin)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc := NewService(newFakeRepo(oilChange()), nopLogger{})

		price := 59.99
		got, err := svc.Update(context.Background(), "st-oil", &UpdateServiceTypeRequest{BasePrice: &price}, admin)
		require.NoError(t, err)

		assert.Equal(t, 59.99, got.BasePrice)
		assert.Equal(t, "Oil Change", got.Name)
	})

	t.Run("invalid resulting state", func(t *testing.T) {
		svc := NewService(newFakeRepo(oilChange()), nopLogger{})

		zero := 0
		_, err := svc.Update(context.Background(), "st-oil", &UpdateServiceTypeRequest{EstimatedDurationMinutes: &zero}, admin)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		name := "Anything"
		_, err := svc.Update(context.Background(), "missing", &UpdateServiceTypeRequest{Name: &name}, admin)
		assert.ErrorIs(t, err, ErrServiceTypeNotFound)
	})
}

func TestDeactivate(t *testing.T) {
	repo := newFakeRepo(oilChange())
	svc := NewService(repo, nopLogger{})

	err := svc.Deactivate(context.Background(), "st-oil", customer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Deactivate(context.Background(), "st-oil", admin)
	require.NoError(t, err)
	assert.False(t, repo.byID["st-oil"].Active)

	err = svc.Deactivate(context.Background(), "missing", admin)
	assert.ErrorIs(t, err, ErrServiceTypeNotFound)
}
