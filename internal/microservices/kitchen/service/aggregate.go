package service

import (
	"context"
	"time"

	"dining-system/internal/apperr"
	"dining-system/internal/common/logger"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/kitchen/domain/dao"
	"dining-system/internal/microservices/kitchen/repository"
)

type KitchenServiceInterface interface {
	AggregateForDate(ctx context.Context, date string) (dao.DayAggregate, error)
	TicketForSlot(ctx context.Context, date, slot string) (string, error)
}

type KitchenService struct {
	repo repository.KitchenRepositoryInterface
	lg   *logger.Logger
}

func NewKitchenService(repo repository.KitchenRepositoryInterface, lg *logger.Logger) *KitchenService {
	return &KitchenService{repo: repo, lg: lg}
}

// AggregateForDate rebuilds the per-slot prep rollup for one date. It is a
// pure function of the order set at call time: the dashboard can refresh it
// any number of times per shift and there is no stored aggregate to drift.
func (s *KitchenService) AggregateForDate(ctx context.Context, date string) (dao.DayAggregate, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperr.InvalidArgument("aggregate", "date must be YYYY-MM-DD, got '"+date+"'")
	}
	orders, err := s.repo.ScheduledForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	agg := Aggregate(orders)
	s.lg.Debug("aggregate_built", map[string]any{"date": date, "slots": len(agg), "orders": len(orders)})
	return agg, nil
}

// Aggregate groups orders by time slot and, within each slot, sums item
// quantities with a per-plan breakdown.
func Aggregate(orders []dao.ScheduledOrder) dao.DayAggregate {
	agg := make(dao.DayAggregate)
	for _, o := range orders {
		slot, ok := agg[o.TimeSlot]
		if !ok {
			slot = make(dao.SlotAggregate)
			agg[o.TimeSlot] = slot
		}
		for _, item := range o.Items {
			entry, ok := slot[item.Name]
			if !ok {
				entry = dao.ItemAggregate{PerPlan: make(map[string]int)}
			}
			entry.Quantity += item.Quantity
			entry.PerPlan[o.PlanName] += item.Quantity
			slot[item.Name] = entry
		}
	}
	return agg
}

// TicketForSlot renders the KOT for one slot of one date.
func (s *KitchenService) TicketForSlot(ctx context.Context, date, slot string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", apperr.InvalidArgument("ticket", "date must be YYYY-MM-DD, got '"+date+"'")
	}
	if !domain.ValidTimeSlot(slot) {
		return "", apperr.InvalidArgument("ticket", "unknown time slot '"+slot+"'")
	}
	orders, err := s.repo.ScheduledForSlot(ctx, date, slot)
	if err != nil {
		return "", err
	}
	doc := BuildKOT(slot, orders)
	s.lg.Info("kot_rendered", map[string]any{"date": date, "slot": slot, "orders": len(orders)})
	return doc, nil
}
