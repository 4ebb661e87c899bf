package dto

import (
	"github.com/shopspring/decimal"

	"dining-system/internal/microservices/dining/domain/dao"
)

type OrderItemInput struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type SubmitOrderRequest struct {
	Items    []OrderItemInput `json:"items"`
	TimeSlot string           `json:"time_slot,omitempty"`
	PlanName string           `json:"plan_name,omitempty"`
}

type SubmitOrderResponse struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OpenSessionResponse struct {
	SessionID string `json:"session_id"`
}

type SetTableStatusRequest struct {
	Status string `json:"status"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// ConvertItems maps input items to dao order items.
func ConvertItems(inputs []OrderItemInput) []dao.OrderItem {
	items := make([]dao.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, dao.OrderItem{
			Name:     in.Name,
			Quantity: in.Quantity,
			Price:    in.Price,
		})
	}
	return items
}
