package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
)

// Mock implementation

type mockRepository struct {
	InsertFunc      func(ctx context.Context, customer domain.Customer) error
	FindAllFunc     func(ctx context.Context) ([]domain.Customer, error)
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Customer, error)
	UpdateFunc      func(ctx context.Context, customer domain.Customer) error
	DeleteFunc      func(ctx context.Context, id string) error
	CountFunc       func(ctx context.Context) (int64, error)
}

func (m *mockRepository) Insert(ctx context.Context, customer domain.Customer) error {
	return m.InsertFunc(ctx, customer)
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockRepository) Update(ctx context.Context, customer domain.Customer) error {
	return m.UpdateFunc(ctx, customer)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

func validInput() CreateInput {
	return CreateInput{
		FirstName: "Alice",
		LastName:  "Wanjiru",
		Phone:     "+254712345678",
		Email:     "alice@example.com",
	}
}

func TestCustomerService_Create_Success(t *testing.T) {
	var inserted domain.Customer
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.Customer, error) {
			return nil, nil
		},
		InsertFunc: func(ctx context.Context, customer domain.Customer) error {
			inserted = customer
			return nil
		},
	}
	svc := NewService(repo)

	customer, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Equal(t, inserted.ID, customer.ID)
	assert.False(t, customer.CreatedAt.IsZero())
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	existing := domain.Customer{ID: "existing-id", Email: "alice@example.com"}
	insertCalled := false
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.Customer, error) {
			return &existing, nil
		},
		InsertFunc: func(ctx context.Context, customer domain.Customer) error {
			insertCalled = true
			return nil
		},
	}
	svc := NewService(repo)

	customer, err := svc.Create(context.Background(), validInput())
	assert.Nil(t, customer)
	require.Error(t, err)

	_, ok := errors.IsAlreadyExistsError(err)
	assert.True(t, ok)
	assert.False(t, insertCalled, "insert must not run after a duplicate email")
}

func TestCustomerService_Create_MissingFields(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{})
	require.Error(t, err)

	ve, ok := errors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 3)
}

func TestCustomerService_Update_MergesFields(t *testing.T) {
	existing := domain.Customer{
		ID:        "id-1",
		FirstName: "Alice",
		LastName:  "Wanjiru",
		Phone:     "+254712345678",
		Email:     "alice@example.com",
	}
	var updated domain.Customer
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			c := existing
			return &c, nil
		},
		UpdateFunc: func(ctx context.Context, customer domain.Customer) error {
			updated = customer
			return nil
		},
	}
	svc := NewService(repo)

	newPhone := "+254700000000"
	result, err := svc.Update(context.Background(), "id-1", UpdateInput{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, newPhone, result.Phone)
	assert.Equal(t, "Alice", result.FirstName, "untouched fields keep stored values")
	assert.Equal(t, newPhone, updated.Phone)
}

func TestCustomerService_Update_EmailConflict(t *testing.T) {
	existing := domain.Customer{ID: "id-1", Email: "alice@example.com"}
	other := domain.Customer{ID: "id-2", Email: "bob@example.com"}
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			c := existing
			return &c, nil
		},
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.Customer, error) {
			return &other, nil
		},
	}
	svc := NewService(repo)

	newEmail := "bob@example.com"
	_, err := svc.Update(context.Background(), "id-1", UpdateInput{Email: &newEmail})
	require.Error(t, err)

	_, ok := errors.IsAlreadyExistsError(err)
	assert.True(t, ok)
}

func TestCustomerService_Update_SameEmailIsNoConflict(t *testing.T) {
	existing := domain.Customer{ID: "id-1", Email: "alice@example.com"}
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			c := existing
			return &c, nil
		},
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.Customer, error) {
			t.Fatal("email lookup must be skipped when the email is unchanged")
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, customer domain.Customer) error {
			return nil
		},
	}
	svc := NewService(repo)

	sameEmail := "alice@example.com"
	_, err := svc.Update(context.Background(), "id-1", UpdateInput{Email: &sameEmail})
	assert.NoError(t, err)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return nil, errors.NewNotFoundError("customer not found")
		},
	}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "missing", UpdateInput{})
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCustomerService_Remove_ReturnsDeleted(t *testing.T) {
	existing := domain.Customer{ID: "id-1", Email: "alice@example.com"}
	deleted := false
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			c := existing
			return &c, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo)

	customer, err := svc.Remove(context.Background(), "id-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "id-1", customer.ID)
}
