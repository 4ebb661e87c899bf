package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
	"dining-system/internal/microservices/dining/domain/dto"
)

// DefaultPlan is the aggregation bucket for walk-in table orders that do not
// belong to a subscription or catering plan.
const DefaultPlan = "dine-in"

// SubmitOrder appends a pending order to an active session. The order total
// is exact decimal arithmetic over the submitted items; the daily order
// number is allocated and the session's running total updated in the same
// atomic step as the insert.
func (s *DiningService) SubmitOrder(ctx context.Context, sessionID string, req dto.SubmitOrderRequest) (dto.SubmitOrderResponse, error) {
	if len(req.Items) == 0 {
		return dto.SubmitOrderResponse{}, apperr.InvalidArgument("order", "at least one item is required")
	}
	total := decimal.Zero
	for _, item := range req.Items {
		if item.Name == "" {
			return dto.SubmitOrderResponse{}, apperr.InvalidArgument("order", "item name is required")
		}
		if item.Quantity <= 0 {
			return dto.SubmitOrderResponse{}, apperr.InvalidArgument("order",
				fmt.Sprintf("invalid quantity for item %s", item.Name))
		}
		if item.Price.IsNegative() {
			return dto.SubmitOrderResponse{}, apperr.InvalidArgument("order",
				fmt.Sprintf("invalid price for item %s", item.Name))
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now().UTC()
	slot := req.TimeSlot
	if slot == "" {
		slot = domain.SlotForTime(now)
	} else if !domain.ValidTimeSlot(slot) {
		return dto.SubmitOrderResponse{}, apperr.InvalidArgument("order", "unknown time slot '"+slot+"'")
	}
	plan := req.PlanName
	if plan == "" {
		plan = DefaultPlan
	}

	order, err := s.orders.CreateWithTotal(ctx, dao.DiningOrder{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		Items:         dto.ConvertItems(req.Items),
		TotalAmount:   total,
		Status:        domain.OrderPending,
		ScheduledDate: now.Format("2006-01-02"),
		TimeSlot:      slot,
		PlanName:      plan,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return dto.SubmitOrderResponse{}, err
	}

	s.lg.Info("order_submitted", map[string]any{
		"order_id": order.ID, "order_number": order.Number,
		"session_id": sessionID, "total_amount": total.String(),
	})
	s.publish(ctx, domain.KeyOrderSubmitted, domain.OrderSubmittedEvent{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		SessionID:   sessionID,
		TimeSlot:    slot,
		PlanName:    plan,
		TotalAmount: total,
		OccurredAt:  now,
	})

	return dto.SubmitOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Status:      order.Status,
		TotalAmount: total,
	}, nil
}

// AdvanceOrderStatus moves an order one step along pending→accepted→served.
// Repeating the current status is a no-op success; regressions and skips are
// invalid transitions.
func (s *DiningService) AdvanceOrderStatus(ctx context.Context, orderID, next string) (dao.DiningOrder, error) {
	if next != domain.OrderPending && next != domain.OrderAccepted && next != domain.OrderServed {
		return dao.DiningOrder{}, apperr.InvalidArgument("order", "unknown status '"+next+"'")
	}

	order, changed, err := s.orders.AdvanceStatus(ctx, orderID, next)
	if err != nil {
		return dao.DiningOrder{}, err
	}
	if !changed {
		return order, nil
	}

	s.lg.Info("order_status_changed", map[string]any{
		"order_id": order.ID, "status": order.Status,
	})
	// Transitions are single-step, so the previous status is implied.
	old := domain.OrderPending
	if order.Status == domain.OrderServed {
		old = domain.OrderAccepted
	}
	s.publish(ctx, domain.KeyOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:    order.ID,
		OldStatus:  old,
		NewStatus:  order.Status,
		ChangedBy:  "dining-service",
		OccurredAt: time.Now().UTC(),
	})
	return order, nil
}

// OrdersForSession lists a session's orders, most recent first.
func (s *DiningService) OrdersForSession(ctx context.Context, sessionID string) ([]dao.DiningOrder, error) {
	return s.orders.ListBySession(ctx, sessionID)
}
