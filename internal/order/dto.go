package order

import (
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/internal/order/service"
)

type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

type CreateOrderRequest struct {
	CustomerID      string             `json:"customerId"`
	OrderDate       time.Time          `json:"orderDate"`
	Description     *string            `json:"description"`
	PaymentMethod   string             `json:"paymentMethod"`
	ShippingAddress string             `json:"shippingAddress"`
	Status          string             `json:"status"`
	Items           []OrderItemRequest `json:"items"`
}

type UpdateOrderRequest struct {
	OrderDate       *time.Time         `json:"orderDate"`
	Description     *string            `json:"description"`
	PaymentMethod   *string            `json:"paymentMethod"`
	ShippingAddress *string            `json:"shippingAddress"`
	Status          *string            `json:"status"`
	Items           []OrderItemRequest `json:"items"`
}

type OrderItemDTO struct {
	ID                 string           `json:"id"`
	ProductID          string           `json:"productId"`
	ProductName        string           `json:"productName"`
	ProductDescription *string          `json:"productDescription,omitempty"`
	ProductUnitCost    *decimal.Decimal `json:"productUnitCost,omitempty"`
	CustomerID         string           `json:"customerId"`
	UnitCost           decimal.Decimal  `json:"unitCost"`
	Quantity           int              `json:"quantity"`
	TotalCost          decimal.Decimal  `json:"totalCost"`
}

type OrderDTO struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	OrderNumber     string          `json:"orderNumber"`
	OrderAmount     decimal.Decimal `json:"orderAmount"`
	OrderDate       time.Time       `json:"orderDate"`
	Description     *string         `json:"description"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Items           []OrderItemDTO  `json:"items"`
}

func toOrderDTO(v service.OrderView) OrderDTO {
	items := make([]OrderItemDTO, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItemDTO{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			ProductUnitCost:    item.ProductUnitCost,
			CustomerID:         item.CustomerID,
			UnitCost:           item.UnitCost,
			Quantity:           item.Quantity,
			TotalCost:          item.TotalCost,
		})
	}

	return OrderDTO{
		ID:              v.ID,
		CustomerID:      v.CustomerID,
		CustomerName:    v.CustomerName,
		OrderNumber:     v.OrderNumber,
		OrderAmount:     v.OrderAmount,
		OrderDate:       v.OrderDate,
		Description:     v.Description,
		PaymentMethod:   v.PaymentMethod,
		ShippingAddress: v.ShippingAddress,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		Items:           items,
	}
}

func toItemInputs(items []OrderItemRequest) []service.ItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]service.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}
	return inputs
}
