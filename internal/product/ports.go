package product

import (
	"context"

	"salesdesk/internal/domain"
	"salesdesk/internal/product/service"
)

type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindOne(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, in service.UpdateInput) (*domain.Product, error)
	Remove(ctx context.Context, id string) (*domain.Product, error)
}
