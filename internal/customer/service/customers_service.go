package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
)

type Repository interface {
	Insert(ctx context.Context, customer domain.Customer) error
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CreateInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   *string
	City      *string
}

type UpdateInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
	Address   *string
	City      *string
}

type CustomerService struct {
	repo Repository
}

func NewService(repo Repository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create rejects a duplicate email before touching the store. The
// explicit lookup gives a deterministic AlreadyExists instead of a
// storage-layer fault; the unique index remains the last line of
// defense against races.
func (s *CustomerService) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewAlreadyExistsError(fmt.Sprintf("customer with email %s already exists", in.Email))
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		City:      in.City,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

func (s *CustomerService) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

func (s *CustomerService) FindOne(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByEmail returns (nil, nil) when no customer carries the email.
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *CustomerService) Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != customer.Email {
		if *in.Email == "" {
			return nil, errors.NewValidationError("email must not be empty", errors.ValidationDetail{
				Field:   "email",
				Message: "email must not be empty",
			})
		}
		existing, err := s.repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, errors.NewAlreadyExistsError(fmt.Sprintf("customer with email %s already exists", *in.Email))
		}
		customer.Email = *in.Email
	}

	if in.FirstName != nil {
		customer.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		customer.LastName = *in.LastName
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = in.Address
	}
	if in.City != nil {
		customer.City = in.City
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) Remove(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func validateCreate(in CreateInput) error {
	var details []errors.ValidationDetail
	if in.FirstName == "" {
		details = append(details, errors.ValidationDetail{Field: "firstName", Message: "firstName is required"})
	}
	if in.LastName == "" {
		details = append(details, errors.ValidationDetail{Field: "lastName", Message: "lastName is required"})
	}
	if in.Email == "" {
		details = append(details, errors.ValidationDetail{Field: "email", Message: "email is required"})
	}
	if len(details) > 0 {
		return errors.NewValidationError("invalid customer", details...)
	}
	return nil
}
