package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	"salesdesk/internal/money"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	Update(ctx context.Context, tx *sql.Tx, order domain.Order) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
	Count(ctx context.Context) (int64, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) error
	FindByOrderID(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	FindByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error)
	DeleteByOrderID(ctx context.Context, tx *sql.Tx, orderID string) error
}

type CustomerReader interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Customer, error)
}

type ProductReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type ItemInput struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}

type CreateInput struct {
	CustomerID      string
	OrderDate       time.Time
	Description     *string
	PaymentMethod   string
	ShippingAddress string
	Status          string
	// OrderNumber is generated when empty; the bulk loader supplies
	// its own run-unique numbers.
	OrderNumber string
	Items       []ItemInput
}

type UpdateInput struct {
	OrderDate       *time.Time
	Description     *string
	PaymentMethod   *string
	ShippingAddress *string
	Status          *string
	// Items, when non-nil, replaces the whole item set.
	Items []ItemInput
}

// OrderItemView is an order item annotated with read-side product
// data. ProductDescription and ProductUnitCost (the product's current
// price, as opposed to the UnitCost snapshot taken at time of sale)
// are only populated by FindOne.
type OrderItemView struct {
	domain.OrderItem
	ProductName        string
	ProductDescription *string
	ProductUnitCost    *decimal.Decimal
}

// OrderView is an order aggregate annotated with the customer's
// display name. The name is joined at read time, never stored.
type OrderView struct {
	domain.Order
	CustomerName string
	Items        []OrderItemView
}

type OrdersService struct {
	db           TransactionManager
	orderRepo    OrderRepository
	itemRepo     OrderItemRepository
	customerRepo CustomerReader
	productRepo  ProductReader
	logger       *zap.Logger
}

func NewService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	customerRepo CustomerReader,
	productRepo ProductReader,
	logger *zap.Logger,
) *OrdersService {
	return &OrdersService{
		db:           db,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Create persists the order and its items as one transaction. Item
// totals use the supplied unit cost, a point-in-time snapshot, never
// a live lookup of the product's current price. Every item carries
// the order's customer id regardless of input.
func (s *OrdersService) Create(ctx context.Context, in CreateInput) (*OrderView, error) {
	if in.Status == "" {
		in.Status = domain.OrderStatusPending
	}
	if err := validateItems(in.Items, true); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	products, err := s.resolveProducts(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	if in.OrderNumber == "" {
		in.OrderNumber = NewOrderNumber()
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		CustomerID:      in.CustomerID,
		OrderNumber:     in.OrderNumber,
		OrderDate:       in.OrderDate,
		Description:     in.Description,
		PaymentMethod:   in.PaymentMethod,
		ShippingAddress: in.ShippingAddress,
		Status:          in.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := buildItems(order, in.Items, now)
	order.OrderAmount = sumItems(items)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback is a no-op once the transaction committed.
	defer tx.Rollback()

	if err := s.orderRepo.Insert(ctx, tx, order); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := s.itemRepo.Insert(ctx, tx, item); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order create: %w", err)
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Int("itemCount", len(items)),
		zap.String("orderAmount", order.OrderAmount.String()),
	)

	return s.buildView(order, items, *customer, products, false), nil
}

func (s *OrdersService) FindAll(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderView{}, nil
	}

	orderIDs := make([]string, 0, len(orders))
	customerIDs := make([]string, 0, len(orders))
	seenCustomers := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		if _, ok := seenCustomers[o.CustomerID]; !ok {
			seenCustomers[o.CustomerID] = struct{}{}
			customerIDs = append(customerIDs, o.CustomerID)
		}
	}

	itemsByOrder, err := s.itemRepo.FindByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.FindByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	customersByID := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.ID] = c
	}

	var productIDs []string
	seenProducts := make(map[string]struct{})
	for _, items := range itemsByOrder {
		for _, item := range items {
			if _, ok := seenProducts[item.ProductID]; !ok {
				seenProducts[item.ProductID] = struct{}{}
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, *s.buildView(o, itemsByOrder[o.ID], customersByID[o.CustomerID], productsByID, false))
	}

	return views, nil
}

// FindOne annotates each item with the product's description and
// current unit cost so callers can compare price-then against
// price-now.
func (s *OrdersService) FindOne(ctx context.Context, id string) (*OrderView, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	return s.buildView(*order, items, *customer, productsByID, true), nil
}

// Update merges scalar fields and, when items are supplied, replaces
// the whole item set: the old set is deleted and the new one inserted
// in the same transaction, with the order amount recomputed from
// scratch. The order row is locked first so concurrent replacements
// of the same order cannot interleave. The customer reference and
// order number are never touched.
func (s *OrdersService) Update(ctx context.Context, id string, in UpdateInput) (*OrderView, error) {
	if in.Items != nil {
		if err := validateItems(in.Items, false); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if in.OrderDate != nil {
		order.OrderDate = *in.OrderDate
	}
	if in.Description != nil {
		order.Description = in.Description
	}
	if in.PaymentMethod != nil {
		order.PaymentMethod = *in.PaymentMethod
	}
	if in.ShippingAddress != nil {
		order.ShippingAddress = *in.ShippingAddress
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	order.UpdatedAt = time.Now().UTC()

	var items []domain.OrderItem
	if in.Items != nil {
		if err := s.itemRepo.DeleteByOrderID(ctx, tx, id); err != nil {
			return nil, err
		}
		items = buildItems(*order, in.Items, order.UpdatedAt)
		for _, item := range items {
			if err := s.itemRepo.Insert(ctx, tx, item); err != nil {
				return nil, err
			}
		}
		order.OrderAmount = sumItems(items)
	}

	if err := s.orderRepo.Update(ctx, tx, *order); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order update: %w", err)
	}

	s.logger.Info("order updated",
		zap.String("orderId", order.ID),
		zap.Bool("itemsReplaced", in.Items != nil),
		zap.String("orderAmount", order.OrderAmount.String()),
	)

	if in.Items == nil {
		if items, err = s.itemRepo.FindByOrderID(ctx, id); err != nil {
			return nil, err
		}
	}

	customer, err := s.customerRepo.FindByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.resolveProductMap(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	return s.buildView(*order, items, *customer, products, false), nil
}

// Remove deletes the owned items before the order record, inside one
// transaction, so no orphaned item can survive the order.
func (s *OrdersService) Remove(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := s.itemRepo.DeleteByOrderID(ctx, tx, id); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order delete: %w", err)
	}

	s.logger.Info("order deleted",
		zap.String("orderId", id),
		zap.String("orderNumber", order.OrderNumber),
	)

	return nil
}

func (s *OrdersService) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

// FindByOrderNumber returns (nil, nil) when the number is unused.
func (s *OrdersService) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.orderRepo.FindByOrderNumber(ctx, orderNumber)
}

// NewOrderNumber builds a human-readable order number from the
// current time and a random suffix.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

func buildItems(order domain.Order, inputs []ItemInput, now time.Time) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			ProductID:  in.ProductID,
			UnitCost:   in.UnitCost,
			Quantity:   in.Quantity,
			TotalCost:  money.LineTotal(in.UnitCost, in.Quantity),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return items
}

func sumItems(items []domain.OrderItem) decimal.Decimal {
	totals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		totals = append(totals, item.TotalCost)
	}
	return money.Sum(totals...)
}

func (s *OrdersService) resolveProducts(ctx context.Context, inputs []ItemInput) (map[string]domain.Product, error) {
	ids := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.ProductID]; !ok {
			seen[in.ProductID] = struct{}{}
			ids = append(ids, in.ProductID)
		}
	}

	products, err := s.resolveProductMap(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
		}
	}
	return products, nil
}

func (s *OrdersService) resolveProductMap(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *OrdersService) buildView(
	order domain.Order,
	items []domain.OrderItem,
	customer domain.Customer,
	products map[string]domain.Product,
	withProductDetail bool,
) *OrderView {
	itemViews := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		view := OrderItemView{OrderItem: item}
		if p, ok := products[item.ProductID]; ok {
			view.ProductName = p.Name
			if withProductDetail {
				view.ProductDescription = p.Description
				current := p.UnitCost
				view.ProductUnitCost = &current
			}
		}
		itemViews = append(itemViews, view)
	}

	return &OrderView{
		Order:        order,
		CustomerName: customer.FullName(),
		Items:        itemViews,
	}
}

func validateItems(items []ItemInput, required bool) error {
	if required && len(items) == 0 {
		return errors.NewValidationError("order must have at least one item", errors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}
	for i, item := range items {
		if item.ProductID == "" {
			return errors.NewValidationError("invalid order item", errors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: "productId is required",
			})
		}
		if item.Quantity < 1 {
			return errors.NewValidationError("invalid order item", errors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			})
		}
		if item.UnitCost.IsNegative() {
			return errors.NewValidationError("invalid order item", errors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].unitCost", i),
				Message: "unitCost must not be negative",
			})
		}
	}
	return nil
}
