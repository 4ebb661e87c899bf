package dao

import "github.com/shopspring/decimal"

// ScheduledOrder is the kitchen's read-side view of an order: what to cook,
// in which meal slot, under which plan. It spans sessions and tables.
type ScheduledOrder struct {
	Number   string `json:"number"`
	Date     string `json:"date"` // YYYY-MM-DD
	TimeSlot string `json:"time_slot"`
	PlanName string `json:"plan_name"`
	Items    []Item `json:"items"`
}

type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ItemAggregate is the prep count for one item within one slot, broken down
// by originating plan.
type ItemAggregate struct {
	Quantity int            `json:"quantity"`
	PerPlan  map[string]int `json:"per_plan"`
}

// SlotAggregate maps item name to its aggregate within a time slot.
type SlotAggregate map[string]ItemAggregate

// DayAggregate maps time slot to its item rollup for one date.
type DayAggregate map[string]SlotAggregate
