package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesdesk/internal/errors"
)

// Unit Tests

func TestOrdersService_Create_RequiresItems(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInput{CustomerID: "c-1"})
	require.Error(t, err)

	ve, ok := errors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items", ve.Details[0].Field)
}

func TestOrdersService_Create_RejectsZeroQuantity(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: "c-1",
		Items: []ItemInput{
			{ProductID: "p-1", Quantity: 0, UnitCost: decimal.RequireFromString("10.00")},
		},
	})
	require.Error(t, err)

	_, ok := errors.IsValidationError(err)
	assert.True(t, ok)
}

func TestOrdersService_Create_RejectsNegativeUnitCost(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: "c-1",
		Items: []ItemInput{
			{ProductID: "p-1", Quantity: 1, UnitCost: decimal.RequireFromString("-0.01")},
		},
	})
	require.Error(t, err)

	_, ok := errors.IsValidationError(err)
	assert.True(t, ok)
}

func TestOrdersService_Update_RejectsInvalidReplacementItems(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "o-1", UpdateInput{
		Items: []ItemInput{
			{ProductID: "", Quantity: 1, UnitCost: decimal.RequireFromString("10.00")},
		},
	})
	require.Error(t, err)

	_, ok := errors.IsValidationError(err)
	assert.True(t, ok)
}

func TestNewOrderNumber_Format(t *testing.T) {
	number := NewOrderNumber()
	assert.True(t, strings.HasPrefix(number, "ORD-"), number)
	assert.Len(t, strings.Split(number, "-"), 3)
}
