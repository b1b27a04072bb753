package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"salesdesk/internal/customer/repository"
	"salesdesk/internal/customer/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLCustomerRepository(db)
	svc := service.NewService(repo)
	return NewController(svc, logger)
}

func NewService(db *sql.DB) *service.CustomerService {
	return service.NewService(repository.NewMySQLCustomerRepository(db))
}
