package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-system/internal/apperr"
	"dining-system/internal/common/logger"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/kitchen/domain/dao"
)

func sampleOrders() []dao.ScheduledOrder {
	return []dao.ScheduledOrder{
		{
			Number: "ORD_20260901_001", Date: "2026-09-01", TimeSlot: domain.SlotLunch, PlanName: "dine-in",
			Items: []dao.Item{{Name: "Dumplings", Quantity: 2}, {Name: "Tea", Quantity: 1}},
		},
		{
			Number: "ORD_20260901_002", Date: "2026-09-01", TimeSlot: domain.SlotLunch, PlanName: "weekly-plan",
			Items: []dao.Item{{Name: "Dumplings", Quantity: 3}},
		},
		{
			Number: "ORD_20260901_003", Date: "2026-09-01", TimeSlot: domain.SlotDinner, PlanName: "dine-in",
			Items: []dao.Item{{Name: "Stew", Quantity: 1}},
		},
	}
}

func TestAggregate_GroupsBySlotItemAndPlan(t *testing.T) {
	agg := Aggregate(sampleOrders())

	require.Len(t, agg, 2)

	lunch := agg[domain.SlotLunch]
	require.NotNil(t, lunch)
	assert.Equal(t, 5, lunch["Dumplings"].Quantity)
	assert.Equal(t, map[string]int{"dine-in": 2, "weekly-plan": 3}, lunch["Dumplings"].PerPlan)
	assert.Equal(t, 1, lunch["Tea"].Quantity)

	dinner := agg[domain.SlotDinner]
	require.NotNil(t, dinner)
	assert.Equal(t, 1, dinner["Stew"].Quantity)
	assert.Equal(t, map[string]int{"dine-in": 1}, dinner["Stew"].PerPlan)
}

func TestAggregate_Idempotent(t *testing.T) {
	orders := sampleOrders()

	first := Aggregate(orders)
	second := Aggregate(orders)
	assert.Equal(t, first, second, "same order set must aggregate identically")
}

func TestAggregate_OneMoreOrderMovesExactlyOneBucket(t *testing.T) {
	orders := sampleOrders()
	before := Aggregate(orders)

	orders = append(orders, dao.ScheduledOrder{
		Number: "ORD_20260901_004", Date: "2026-09-01", TimeSlot: domain.SlotLunch, PlanName: "weekly-plan",
		Items: []dao.Item{{Name: "Tea", Quantity: 2}},
	})
	after := Aggregate(orders)

	// Only lunch/Tea/weekly-plan moved.
	assert.Equal(t, before[domain.SlotDinner], after[domain.SlotDinner])
	assert.Equal(t, before[domain.SlotLunch]["Dumplings"], after[domain.SlotLunch]["Dumplings"])

	assert.Equal(t, before[domain.SlotLunch]["Tea"].Quantity+2, after[domain.SlotLunch]["Tea"].Quantity)
	assert.Equal(t, 2, after[domain.SlotLunch]["Tea"].PerPlan["weekly-plan"])
	assert.Equal(t, before[domain.SlotLunch]["Tea"].PerPlan["dine-in"], after[domain.SlotLunch]["Tea"].PerPlan["dine-in"])
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)
	assert.Empty(t, agg)
}

// stubRepo serves a fixed order set.
type stubRepo struct {
	orders []dao.ScheduledOrder
}

func (s *stubRepo) ScheduledForDate(ctx context.Context, date string) ([]dao.ScheduledOrder, error) {
	out := make([]dao.ScheduledOrder, 0)
	for _, o := range s.orders {
		if o.Date == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubRepo) ScheduledForSlot(ctx context.Context, date, slot string) ([]dao.ScheduledOrder, error) {
	out := make([]dao.ScheduledOrder, 0)
	for _, o := range s.orders {
		if o.Date == date && o.TimeSlot == slot {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestAggregateForDate(t *testing.T) {
	svc := NewKitchenService(&stubRepo{orders: sampleOrders()}, logger.New("test"))
	ctx := context.Background()

	agg, err := svc.AggregateForDate(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.Len(t, agg, 2)

	empty, err := svc.AggregateForDate(ctx, "2026-09-02")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.AggregateForDate(ctx, "yesterday")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}
