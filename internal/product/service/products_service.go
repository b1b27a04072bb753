package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	"salesdesk/internal/money"
)

type Repository interface {
	Insert(ctx context.Context, product domain.Product) error
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CreateInput struct {
	Name        string
	Description *string
	Category    string
	UnitCost    decimal.Decimal
	Quantity    int
}

type UpdateInput struct {
	Name        *string
	Description *string
	Category    *string
	UnitCost    *decimal.Decimal
	Quantity    *int
}

type ProductService struct {
	repo Repository
}

func NewService(repo Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		UnitCost:    in.UnitCost,
		Quantity:    in.Quantity,
		TotalCost:   money.LineTotal(in.UnitCost, in.Quantity),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (s *ProductService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) FindOne(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return s.repo.FindByName(ctx, name)
}

// Update recomputes the total cost from the merged unit cost and
// quantity so a partial update never leaves it stale.
func (s *ProductService) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, errors.NewValidationError("unitCost must not be negative", errors.ValidationDetail{
				Field:   "unitCost",
				Message: "unitCost must not be negative",
			})
		}
		product.UnitCost = *in.UnitCost
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, errors.NewValidationError("quantity must not be negative", errors.ValidationDetail{
				Field:   "quantity",
				Message: "quantity must not be negative",
			})
		}
		product.Quantity = *in.Quantity
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}

	product.TotalCost = money.LineTotal(product.UnitCost, product.Quantity)
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Remove(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func validateCreate(in CreateInput) error {
	var details []errors.ValidationDetail
	if in.Name == "" {
		details = append(details, errors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if in.Category == "" {
		details = append(details, errors.ValidationDetail{Field: "category", Message: "category is required"})
	}
	if in.UnitCost.IsNegative() {
		details = append(details, errors.ValidationDetail{Field: "unitCost", Message: "unitCost must not be negative"})
	}
	if in.Quantity < 0 {
		details = append(details, errors.ValidationDetail{Field: "quantity", Message: "quantity must not be negative"})
	}
	if len(details) > 0 {
		return errors.NewValidationError(fmt.Sprintf("invalid product %q", in.Name), details...)
	}
	return nil
}
