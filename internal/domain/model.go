// Package domain holds the vocabulary shared by the dining and kitchen
// services: entity statuses, the order transition table, and meal time slots.
package domain

import "time"

// Table occupancy.
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
)

// Session lifecycle. Completed is terminal.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// Order lifecycle. Statuses advance monotonically and never regress.
const (
	OrderPending  = "pending"
	OrderAccepted = "accepted"
	OrderServed   = "served"
)

func ValidTableStatus(s string) bool {
	return s == TableAvailable || s == TableOccupied
}

// CanTransition reports whether an order may move from cur to next.
// Only pending→accepted and accepted→served are legal.
func CanTransition(cur, next string) bool {
	switch cur {
	case OrderPending:
		return next == OrderAccepted
	case OrderAccepted:
		return next == OrderServed
	default:
		return false
	}
}

// Meal time slots used to group orders for kitchen prep.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
)

// SlotSchedule maps each slot to its scheduled serving time (HH:MM).
var SlotSchedule = map[string]string{
	SlotBreakfast: "08:00",
	SlotLunch:     "12:30",
	SlotDinner:    "19:00",
}

func ValidTimeSlot(s string) bool {
	_, ok := SlotSchedule[s]
	return ok
}

// SlotForTime assigns a submission time to a meal slot: before 11:00 is
// breakfast, before 17:00 lunch, otherwise dinner.
func SlotForTime(t time.Time) string {
	switch h := t.Hour(); {
	case h < 11:
		return SlotBreakfast
	case h < 17:
		return SlotLunch
	default:
		return SlotDinner
	}
}
