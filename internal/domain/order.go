package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              string
	CustomerID      string
	OrderNumber     string
	OrderAmount     decimal.Decimal
	OrderDate       time.Time
	Description     *string
	PaymentMethod   string
	ShippingAddress string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem snapshots the unit cost at the time of sale; later product
// price changes do not touch it. CustomerID always mirrors the owning
// order's customer.
type OrderItem struct {
	ID         string
	OrderID    string
	CustomerID string
	ProductID  string
	UnitCost   decimal.Decimal
	Quantity   int
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

func OrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

const (
	PaymentMethodVisa         = "VISA"
	PaymentMethodMastercard   = "MASTERCARD"
	PaymentMethodPaypal       = "PAYPAL"
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
)

func PaymentMethods() []string {
	return []string{
		PaymentMethodVisa,
		PaymentMethodMastercard,
		PaymentMethodPaypal,
		PaymentMethodCash,
		PaymentMethodBankTransfer,
	}
}
