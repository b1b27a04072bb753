package order

import (
	"context"

	"salesdesk/internal/order/service"
)

type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*service.OrderView, error)
	FindAll(ctx context.Context) ([]service.OrderView, error)
	FindOne(ctx context.Context, id string) (*service.OrderView, error)
	Update(ctx context.Context, id string, in service.UpdateInput) (*service.OrderView, error)
	Remove(ctx context.Context, id string) error
}
