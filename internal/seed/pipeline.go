// Package seed populates an empty database with synthetic customers,
// products and orders. It is a one-shot bootstrap: a store that
// already holds rows makes the whole run a no-op.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	customersvc "salesdesk/internal/customer/service"
	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	ordersvc "salesdesk/internal/order/service"
	productsvc "salesdesk/internal/product/service"
)

const (
	numCustomers = 200
	numProducts  = 150
	numOrders    = 100

	// Orders use a smaller batch because every order insert fans out
	// into item inserts of its own.
	simpleBatchSize = 50
	orderBatchSize  = 10

	maxItemsPerOrder = 5
	maxItemQuantity  = 5
)

type CustomerStore interface {
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}

type OrderStore interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*ordersvc.OrderView, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	Count(ctx context.Context) (int64, error)
}

type Pipeline struct {
	customers CustomerStore
	products  ProductStore
	orders    OrderStore
	logger    *zap.Logger
	rnd       *rand.Rand
}

func NewPipeline(customers CustomerStore, products ProductStore, orders OrderStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes the full pipeline: idempotency gate, customer stage,
// product stage, order stage, completion report. Individual record
// failures never abort a batch or the run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("starting seed")

	customerCount, productCount, orderCount, err := p.countAll(ctx)
	if err != nil {
		return fmt.Errorf("counting existing rows: %w", err)
	}

	if customerCount > 0 || productCount > 0 || orderCount > 0 {
		p.logger.Info("database already contains data, skipping seed",
			zap.Int64("customers", customerCount),
			zap.Int64("products", productCount),
			zap.Int64("orders", orderCount),
		)
		return nil
	}

	customers := p.seedCustomers(ctx)
	products := p.seedProducts(ctx)

	// Order generation samples from the resulting sets; with either
	// one empty there is nothing valid to generate.
	if len(customers) == 0 || len(products) == 0 {
		p.logger.Warn("skipping order stage",
			zap.Int("customers", len(customers)),
			zap.Int("products", len(products)),
		)
	} else {
		p.seedOrders(ctx, customers, products)
	}

	customerCount, productCount, orderCount, err = p.countAll(ctx)
	if err != nil {
		return fmt.Errorf("counting final rows: %w", err)
	}

	p.logger.Info("seed completed",
		zap.Int64("customers", customerCount),
		zap.Int64("products", productCount),
		zap.Int64("orders", orderCount),
	)

	return nil
}

func (p *Pipeline) countAll(ctx context.Context) (customers, products, orders int64, err error) {
	if customers, err = p.customers.Count(ctx); err != nil {
		return 0, 0, 0, err
	}
	if products, err = p.products.Count(ctx); err != nil {
		return 0, 0, 0, err
	}
	if orders, err = p.orders.Count(ctx); err != nil {
		return 0, 0, 0, err
	}
	return customers, products, orders, nil
}

func (p *Pipeline) seedCustomers(ctx context.Context) []domain.Customer {
	inputs := p.generateCustomers(numCustomers)
	working := make([]domain.Customer, 0, len(inputs))

	for start := 0; start < len(inputs); start += simpleBatchSize {
		end := start + simpleBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[start:end]
		results := make([]*domain.Customer, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, in := range batch {
			i, in := i, in
			g.Go(func() error {
				created, err := p.customers.Create(gctx, in)
				if err == nil {
					results[i] = created
					return nil
				}
				if _, ok := errors.IsAlreadyExistsError(err); ok {
					existing, lookupErr := p.customers.FindByEmail(gctx, in.Email)
					if lookupErr == nil && existing != nil {
						p.logger.Info("customer already exists, reusing", zap.String("email", in.Email))
						results[i] = existing
						return nil
					}
				}
				p.logger.Warn("customer insert failed, dropping record",
					zap.String("email", in.Email), zap.Error(err))
				return nil
			})
		}
		// Workers never return an error; a failed record is logged and
		// dropped inside the closure.
		_ = g.Wait()

		for _, c := range results {
			if c != nil {
				working = append(working, *c)
			}
		}
	}

	p.logger.Info("customer stage done", zap.Int("workingSet", len(working)))
	return working
}

func (p *Pipeline) seedProducts(ctx context.Context) []domain.Product {
	inputs := p.generateProducts(numProducts)
	working := make([]domain.Product, 0, len(inputs))

	for start := 0; start < len(inputs); start += simpleBatchSize {
		end := start + simpleBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[start:end]
		results := make([]*domain.Product, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, in := range batch {
			i, in := i, in
			g.Go(func() error {
				created, err := p.products.Create(gctx, in)
				if err == nil {
					results[i] = created
					return nil
				}
				if _, ok := errors.IsAlreadyExistsError(err); ok {
					existing, lookupErr := p.products.FindByName(gctx, in.Name)
					if lookupErr == nil && existing != nil {
						p.logger.Info("product already exists, reusing", zap.String("name", in.Name))
						results[i] = existing
						return nil
					}
				}
				p.logger.Warn("product insert failed, dropping record",
					zap.String("name", in.Name), zap.Error(err))
				return nil
			})
		}
		_ = g.Wait()

		for _, prod := range results {
			if prod != nil {
				working = append(working, *prod)
			}
		}
	}

	p.logger.Info("product stage done", zap.Int("workingSet", len(working)))
	return working
}

func (p *Pipeline) seedOrders(ctx context.Context, customers []domain.Customer, products []domain.Product) {
	inputs := p.generateOrders(numOrders, customers, products)
	inserted := 0

	for start := 0; start < len(inputs); start += orderBatchSize {
		end := start + orderBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[start:end]
		results := make([]bool, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, in := range batch {
			i, in := i, in
			g.Go(func() error {
				existing, err := p.orders.FindByOrderNumber(gctx, in.OrderNumber)
				if err != nil {
					p.logger.Warn("order number lookup failed, dropping record",
						zap.String("orderNumber", in.OrderNumber), zap.Error(err))
					return nil
				}
				if existing != nil {
					p.logger.Info("order number already taken, skipping",
						zap.String("orderNumber", in.OrderNumber))
					return nil
				}

				if _, err := p.orders.Create(gctx, in); err != nil {
					if _, ok := errors.IsAlreadyExistsError(err); ok {
						p.logger.Info("order number collided on insert, skipping",
							zap.String("orderNumber", in.OrderNumber))
						return nil
					}
					p.logger.Warn("order insert failed, dropping record",
						zap.String("orderNumber", in.OrderNumber), zap.Error(err))
					return nil
				}

				results[i] = true
				return nil
			})
		}
		_ = g.Wait()

		for _, ok := range results {
			if ok {
				inserted++
			}
		}
	}

	p.logger.Info("order stage done", zap.Int("inserted", inserted))
}
