package dao

import (
	"time"

	"github.com/shopspring/decimal"
)

type Table struct {
	ID        string `json:"id"`
	BranchID  string `json:"branch_id"`
	Name      string `json:"name"`
	CustomURL string `json:"custom_url"`
	IsEnabled bool   `json:"is_enabled"`
	Status    string `json:"status"` // available | occupied
	Position  int    `json:"position"`
}

type DiningSession struct {
	ID               string          `json:"id"`
	BranchID         string          `json:"branch_id"`
	TableName        string          `json:"table_name"`
	Status           string          `json:"status"` // active | completed
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaymentRequested bool            `json:"payment_requested"`
	CreatedAt        time.Time       `json:"created_at"`
}

type DiningOrder struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	SessionID     string          `json:"session_id"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"` // pending | accepted | served
	ScheduledDate string          `json:"scheduled_date"` // YYYY-MM-DD
	TimeSlot      string          `json:"time_slot"`
	PlanName      string          `json:"plan_name"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Invoice struct {
	InvoiceNo   string          `json:"invoice_no"`
	BranchName  string          `json:"branch_name"`
	VATNumber   string          `json:"vat_number"`
	TableName   string          `json:"table_name"`
	Date        time.Time       `json:"date"`
	Orders      []InvoiceLine   `json:"orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type InvoiceLine struct {
	OrderNumber string          `json:"order_number"`
	Items       []OrderItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
