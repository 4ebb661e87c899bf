package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dining-system/internal/microservices/kitchen/domain/dao"
)

// KitchenRepositoryInterface reads the order set the aggregator projects
// over. Read-only: the kitchen never mutates orders through this path.
type KitchenRepositoryInterface interface {
	ScheduledForDate(ctx context.Context, date string) ([]dao.ScheduledOrder, error)
	ScheduledForSlot(ctx context.Context, date, slot string) ([]dao.ScheduledOrder, error)
}

type KitchenRepository struct {
	db *sql.DB
}

func NewKitchenRepository(db *sql.DB) *KitchenRepository { return &KitchenRepository{db: db} }

func (r *KitchenRepository) ScheduledForDate(ctx context.Context, date string) ([]dao.ScheduledOrder, error) {
	return r.query(ctx, `
		SELECT id, number, scheduled_date, time_slot, plan_name
		FROM dining_orders
		WHERE scheduled_date = $1
		ORDER BY number
	`, date)
}

func (r *KitchenRepository) ScheduledForSlot(ctx context.Context, date, slot string) ([]dao.ScheduledOrder, error) {
	return r.query(ctx, `
		SELECT id, number, scheduled_date, time_slot, plan_name
		FROM dining_orders
		WHERE scheduled_date = $1 AND time_slot = $2
		ORDER BY number
	`, date, slot)
}

func (r *KitchenRepository) query(ctx context.Context, q string, args ...any) ([]dao.ScheduledOrder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduled orders: %w", err)
	}
	defer rows.Close()

	var ids []string
	out := make([]dao.ScheduledOrder, 0)
	for rows.Next() {
		var id string
		var o dao.ScheduledOrder
		if err := rows.Scan(&id, &o.Number, &o.Date, &o.TimeSlot, &o.PlanName); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		items, err := r.itemsFor(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *KitchenRepository) itemsFor(ctx context.Context, orderID string) ([]dao.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, quantity, price FROM dining_order_items WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := make([]dao.Item, 0)
	for rows.Next() {
		var it dao.Item
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
