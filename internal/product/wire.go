package product

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/product/repository"
	"salesdesk/internal/product/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductRepository(db)
	svc := service.NewService(repo)
	return NewController(svc, logger)
}

func NewService(db *sql.DB) *service.ProductService {
	return service.NewService(repository.NewMySQLProductRepository(db))
}
