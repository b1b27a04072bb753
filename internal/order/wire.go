package order

import (
	"database/sql"

	"go.uber.org/zap"

	customerrepo "salesdesk/internal/customer/repository"
	orderrepo "salesdesk/internal/order/repository"
	"salesdesk/internal/order/service"
	productrepo "salesdesk/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	return NewController(NewService(db, logger), logger)
}

func NewService(db *sql.DB, logger *zap.Logger) *service.OrdersService {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)

	return service.NewService(db, orderRepo, itemRepo, customerRepo, productRepo, logger)
}
