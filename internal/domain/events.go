package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys on the dining_topic exchange.
const (
	KeyOrderSubmitted     = "order.submitted"
	KeyOrderStatusChanged = "order.status_changed"
	KeySessionOpened      = "session.opened"
	KeySessionCompleted   = "session.completed"
)

type OrderSubmittedEvent struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	SessionID   string          `json:"session_id"`
	TimeSlot    string          `json:"time_slot"`
	PlanName    string          `json:"plan_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SessionEvent struct {
	SessionID   string          `json:"session_id"`
	BranchID    string          `json:"branch_id"`
	TableName   string          `json:"table_name"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
