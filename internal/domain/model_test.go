package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		cur, next string
		ok        bool
	}{
		{OrderPending, OrderAccepted, true},
		{OrderAccepted, OrderServed, true},
		{OrderPending, OrderServed, false},
		{OrderAccepted, OrderPending, false},
		{OrderServed, OrderPending, false},
		{OrderServed, OrderAccepted, false},
		{OrderServed, OrderServed, false},
		{OrderPending, "cancelled", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.cur, tc.next), "%s -> %s", tc.cur, tc.next)
	}
}

func TestSlotForTime(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)
	}
	assert.Equal(t, SlotBreakfast, SlotForTime(at(7)))
	assert.Equal(t, SlotBreakfast, SlotForTime(at(10)))
	assert.Equal(t, SlotLunch, SlotForTime(at(11)))
	assert.Equal(t, SlotLunch, SlotForTime(at(16)))
	assert.Equal(t, SlotDinner, SlotForTime(at(17)))
	assert.Equal(t, SlotDinner, SlotForTime(at(23)))
}

func TestValidTimeSlot(t *testing.T) {
	assert.True(t, ValidTimeSlot(SlotBreakfast))
	assert.True(t, ValidTimeSlot(SlotLunch))
	assert.True(t, ValidTimeSlot(SlotDinner))
	assert.False(t, ValidTimeSlot("brunch"))
	assert.False(t, ValidTimeSlot(""))
}

func TestValidTableStatus(t *testing.T) {
	assert.True(t, ValidTableStatus(TableAvailable))
	assert.True(t, ValidTableStatus(TableOccupied))
	assert.False(t, ValidTableStatus("reserved"))
}
