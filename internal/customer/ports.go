package customer

import (
	"context"

	"salesdesk/internal/customer/service"
	"salesdesk/internal/domain"
)

type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindOne(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, id string, in service.UpdateInput) (*domain.Customer, error)
	Remove(ctx context.Context, id string) (*domain.Customer, error)
}
