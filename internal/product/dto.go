package product

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/domain"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
	Quantity    *int             `json:"quantity"`
}

type ProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		UnitCost:    p.UnitCost,
		Quantity:    p.Quantity,
		TotalCost:   p.TotalCost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
