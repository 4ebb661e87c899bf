package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
)

// BuildInvoice renders an itemized invoice for a session's served orders.
// Per-order subtotals are recomputed from the items, but the invoice total
// is taken from the session's accrued running total, so a reprint always
// agrees with what the session charged even if catalog prices moved since.
func (s *DiningService) BuildInvoice(ctx context.Context, sessionID string) (dao.Invoice, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return dao.Invoice{}, err
	}
	orders, err := s.orders.ListBySession(ctx, sessionID)
	if err != nil {
		return dao.Invoice{}, err
	}

	lines := make([]dao.InvoiceLine, 0, len(orders))
	for _, o := range orders {
		if o.Status != domain.OrderServed {
			continue
		}
		subtotal := decimal.Zero
		for _, item := range o.Items {
			subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		lines = append(lines, dao.InvoiceLine{
			OrderNumber: o.Number,
			Items:       o.Items,
			Subtotal:    subtotal,
		})
	}
	if len(lines) == 0 {
		return dao.Invoice{}, apperr.FailedPrecondition("session", sessionID, "no served orders to invoice")
	}

	now := time.Now().UTC()
	suffix := sessionID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	inv := dao.Invoice{
		InvoiceNo:   fmt.Sprintf("INV_%s_%s", now.Format("20060102150405"), suffix),
		BranchName:  s.branch.Name,
		VATNumber:   s.branch.VATNumber,
		TableName:   session.TableName,
		Date:        now,
		Orders:      lines,
		TotalAmount: session.TotalAmount,
	}

	s.lg.Info("invoice_built", map[string]any{
		"invoice_no": inv.InvoiceNo, "session_id": sessionID, "total_amount": inv.TotalAmount.String(),
	})
	return inv, nil
}
