package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Description *string
	Category    string
	UnitCost    decimal.Decimal
	Quantity    int
	TotalCost   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
