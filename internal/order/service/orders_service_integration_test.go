package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	customerrepo "salesdesk/internal/customer/repository"
	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	orderrepo "salesdesk/internal/order/repository"
	productrepo "salesdesk/internal/product/repository"
	"salesdesk/internal/testutil"
)

// Integration Tests

type fixture struct {
	db       *sql.DB
	svc      *OrdersService
	itemRepo *orderrepo.MySQLOrderItemRepository
	customer domain.Customer
	products []domain.Product
}

func setupFixture(t *testing.T) *fixture {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	customerRepo := customerrepo.NewMySQLCustomerRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)
	oRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)

	svc := NewService(db, oRepo, itemRepo, customerRepo, productRepo, zap.NewNop())

	now := time.Now().UTC().Truncate(time.Second)
	customer := domain.Customer{
		ID:        uuid.NewString(),
		FirstName: "Alice",
		LastName:  "Wanjiru",
		Phone:     "+254712345678",
		Email:     "a@x.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, customerRepo.Insert(context.Background(), customer))

	var products []domain.Product
	for _, seedProduct := range []struct {
		name string
		cost string
	}{
		{"Laptop", "100.00"},
		{"Mouse", "50.00"},
		{"Keyboard", "25.00"},
	} {
		p := domain.Product{
			ID:        uuid.NewString(),
			Name:      seedProduct.name,
			Category:  "Electronics",
			UnitCost:  decimal.RequireFromString(seedProduct.cost),
			Quantity:  5,
			TotalCost: decimal.RequireFromString(seedProduct.cost).Mul(decimal.NewFromInt(5)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, productRepo.Insert(context.Background(), p))
		products = append(products, p)
	}

	return &fixture{db: db, svc: svc, itemRepo: itemRepo, customer: customer, products: products}
}

func TestOrdersService_Create_AggregateInvariants(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodVisa,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 3, UnitCost: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, view.Status)
	assert.Equal(t, "Alice Wanjiru", view.CustomerName)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Laptop", view.Items[0].ProductName)
	assert.True(t, view.Items[0].TotalCost.Equal(decimal.RequireFromString("300.00")), "got %s", view.Items[0].TotalCost)
	assert.True(t, view.OrderAmount.Equal(decimal.RequireFromString("300.00")), "got %s", view.OrderAmount)
	assert.Equal(t, f.customer.ID, view.Items[0].CustomerID, "item must carry the order's customer")
}

func TestOrdersService_Create_UnknownCustomer(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID:      uuid.NewString(),
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodCash,
		ShippingAddress: "nowhere",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 1, UnitCost: decimal.RequireFromString("1.00")},
		},
	})
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrdersService_FindOne_CarriesCurrentProductPrice(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// Snapshot a price that differs from the product's current price.
	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodPaypal,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[1].ID, Quantity: 2, UnitCost: decimal.RequireFromString("45.00")},
		},
	})
	require.NoError(t, err)

	found, err := f.svc.FindOne(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)

	item := found.Items[0]
	assert.True(t, item.UnitCost.Equal(decimal.RequireFromString("45.00")), "snapshot price")
	require.NotNil(t, item.ProductUnitCost)
	assert.True(t, item.ProductUnitCost.Equal(decimal.RequireFromString("50.00")), "current price")
}

func TestOrdersService_Update_ReplacesItemSet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodVisa,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 3, UnitCost: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)
	oldItemID := view.Items[0].ID

	updated, err := f.svc.Update(ctx, view.ID, UpdateInput{
		Items: []ItemInput{
			{ProductID: f.products[1].ID, Quantity: 2, UnitCost: decimal.RequireFromString("50.00")},
			{ProductID: f.products[2].ID, Quantity: 1, UnitCost: decimal.RequireFromString("25.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, updated.OrderAmount.Equal(decimal.RequireFromString("125.00")), "got %s", updated.OrderAmount)
	require.Len(t, updated.Items, 2)
	for _, item := range updated.Items {
		assert.NotEqual(t, oldItemID, item.ID, "old items must be gone")
		assert.Equal(t, f.customer.ID, item.CustomerID)
	}

	stored, err := f.itemRepo.FindByOrderID(ctx, view.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2, "exactly the new items remain attached")
}

// Two racing replacements of the same order's item set must serialize:
// the stored state is one replacement in full, never a mix.
func TestOrdersService_Update_ConcurrentItemReplacement(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodVisa,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 3, UnitCost: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)

	replacements := [][]ItemInput{
		{{ProductID: f.products[1].ID, Quantity: 2, UnitCost: decimal.RequireFromString("50.00")}},
		{{ProductID: f.products[2].ID, Quantity: 1, UnitCost: decimal.RequireFromString("25.00")}},
	}
	amounts := map[string]decimal.Decimal{
		f.products[1].ID: decimal.RequireFromString("100.00"),
		f.products[2].ID: decimal.RequireFromString("25.00"),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(replacements))
	for i, items := range replacements {
		i, items := i, items
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Update(ctx, view.ID, UpdateInput{Items: items})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "replacement %d", i)
	}

	found, err := f.svc.FindOne(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1, "the stored set is exactly one replacement")

	want, ok := amounts[found.Items[0].ProductID]
	require.True(t, ok, "unexpected product %s", found.Items[0].ProductID)
	assert.True(t, found.OrderAmount.Equal(want), "got %s, want %s", found.OrderAmount, want)

	count, err := f.itemRepo.CountByOrderID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrdersService_Update_ScalarsOnlyKeepsAmount(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodVisa,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 2, UnitCost: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)

	status := domain.OrderStatusShipped
	updated, err := f.svc.Update(ctx, view.ID, UpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.True(t, updated.OrderAmount.Equal(view.OrderAmount), "amount untouched without item replacement")
	assert.Equal(t, view.OrderNumber, updated.OrderNumber)
	require.Len(t, updated.Items, 1)
}

func TestOrdersService_Remove_LeavesNoOrphanedItems(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodVisa,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 1, UnitCost: decimal.RequireFromString("100.00")},
			{ProductID: f.products[1].ID, Quantity: 1, UnitCost: decimal.RequireFromString("50.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(ctx, view.ID))

	count, err := f.itemRepo.CountByOrderID(ctx, view.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.svc.FindOne(ctx, view.ID)
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrdersService_Remove_NotFound(t *testing.T) {
	f := setupFixture(t)

	err := f.svc.Remove(context.Background(), uuid.NewString())
	require.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

// Full walk through the create, replace, delete lifecycle.
func TestOrdersService_AggregateLifecycle(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateInput{
		CustomerID:      f.customer.ID,
		OrderDate:       time.Now().UTC(),
		PaymentMethod:   domain.PaymentMethodMastercard,
		ShippingAddress: "789 Kimathi St, Nairobi",
		Items: []ItemInput{
			{ProductID: f.products[0].ID, Quantity: 3, UnitCost: decimal.RequireFromString("100.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, view.OrderAmount.Equal(decimal.RequireFromString("300.00")))

	updated, err := f.svc.Update(ctx, view.ID, UpdateInput{
		Items: []ItemInput{
			{ProductID: f.products[1].ID, Quantity: 2, UnitCost: decimal.RequireFromString("50.00")},
			{ProductID: f.products[2].ID, Quantity: 1, UnitCost: decimal.RequireFromString("25.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.OrderAmount.Equal(decimal.RequireFromString("125.00")))

	require.NoError(t, f.svc.Remove(ctx, view.ID))

	count, err := f.itemRepo.CountByOrderID(ctx, view.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.svc.FindOne(ctx, view.ID)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
