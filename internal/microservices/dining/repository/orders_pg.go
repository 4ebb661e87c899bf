package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
)

type OrdersPG struct {
	db *sql.DB
}

func NewOrdersPG(db *sql.DB) *OrdersPG { return &OrdersPG{db: db} }

// CreateWithTotal allocates the order's daily number, inserts the order with
// its items and applies the order total to the session inside one
// transaction: either the order is fully recorded with a unique number and
// its total applied, or nothing is written. The counter row lock serializes
// concurrent submissions for the same date.
func (r *OrdersPG) CreateWithTotal(ctx context.Context, o dao.DiningOrder) (dao.DiningOrder, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dao.DiningOrder{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM dining_sessions WHERE id = $1 FOR UPDATE
	`, o.SessionID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return dao.DiningOrder{}, apperr.NotFound("session", o.SessionID)
	}
	if err != nil {
		return dao.DiningOrder{}, fmt.Errorf("failed to lock session: %w", err)
	}
	if status != domain.SessionActive {
		return dao.DiningOrder{}, apperr.FailedPrecondition("session", o.SessionID, "session is not active")
	}

	var seq int
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO dining_order_numbers (scheduled_date, seq) VALUES ($1, 1)
		ON CONFLICT (scheduled_date) DO UPDATE SET seq = dining_order_numbers.seq + 1
		RETURNING seq
	`, o.ScheduledDate).Scan(&seq); err != nil {
		return dao.DiningOrder{}, fmt.Errorf("failed to allocate order number: %w", err)
	}
	o.Number = orderNumber(o.ScheduledDate, seq)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dining_orders
		    (id, number, session_id, total_amount, status, scheduled_date, time_slot, plan_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`, o.ID, o.Number, o.SessionID, o.TotalAmount, o.Status, o.ScheduledDate, o.TimeSlot, o.PlanName, o.CreatedAt)
	if err != nil {
		return dao.DiningOrder{}, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO dining_order_items (order_id, name, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, o.ID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return dao.DiningOrder{}, fmt.Errorf("failed to insert order item %s: %w", item.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE dining_sessions SET total_amount = total_amount + $2 WHERE id = $1
	`, o.SessionID, o.TotalAmount)
	if err != nil {
		return dao.DiningOrder{}, fmt.Errorf("failed to apply order total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return dao.DiningOrder{}, err
	}
	return o, nil
}

// AdvanceStatus moves an order to next under a row lock. Same-status calls
// are no-op successes; anything but pending→accepted and accepted→served is
// rejected.
func (r *OrdersPG) AdvanceStatus(ctx context.Context, orderID, next string) (dao.DiningOrder, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dao.DiningOrder{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var o dao.DiningOrder
	err = tx.QueryRowContext(ctx, `
		SELECT id, number, session_id, total_amount, status, scheduled_date, time_slot, plan_name, created_at, updated_at
		FROM dining_orders WHERE id = $1
		FOR UPDATE
	`, orderID).Scan(&o.ID, &o.Number, &o.SessionID, &o.TotalAmount, &o.Status,
		&o.ScheduledDate, &o.TimeSlot, &o.PlanName, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return dao.DiningOrder{}, false, apperr.NotFound("order", orderID)
	}
	if err != nil {
		return dao.DiningOrder{}, false, fmt.Errorf("failed to lock order: %w", err)
	}

	if next == o.Status {
		return o, false, tx.Commit()
	}
	if !domain.CanTransition(o.Status, next) {
		return dao.DiningOrder{}, false, apperr.InvalidTransition("order", orderID,
			o.Status+" -> "+next+" is not allowed")
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE dining_orders SET status = $2, updated_at = NOW() WHERE id = $1
	`, orderID, next); err != nil {
		return dao.DiningOrder{}, false, fmt.Errorf("failed to update order status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return dao.DiningOrder{}, false, err
	}
	o.Status = next
	return o, true, nil
}

func (r *OrdersPG) ListBySession(ctx context.Context, sessionID string) ([]dao.DiningOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, session_id, total_amount, status, scheduled_date, time_slot, plan_name, created_at, updated_at
		FROM dining_orders
		WHERE session_id = $1
		ORDER BY created_at DESC, number DESC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	out := make([]dao.DiningOrder, 0)
	for rows.Next() {
		var o dao.DiningOrder
		if err := rows.Scan(&o.ID, &o.Number, &o.SessionID, &o.TotalAmount, &o.Status,
			&o.ScheduledDate, &o.TimeSlot, &o.PlanName, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrdersPG) itemsFor(ctx context.Context, orderID string) ([]dao.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, quantity, price FROM dining_order_items WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := make([]dao.OrderItem, 0)
	for rows.Next() {
		var it dao.OrderItem
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
