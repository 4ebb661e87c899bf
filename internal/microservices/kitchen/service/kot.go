package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"dining-system/internal/domain"
	"dining-system/internal/microservices/kitchen/domain/dao"
)

// BuildKOT renders a printable kitchen order ticket for one time slot:
// orders grouped under per-plan headings, items sorted, annotated with a
// fresh ticket id and the slot's scheduled time. Rendering mutates nothing;
// a ticket may be reprinted without touching order state.
func BuildKOT(timeSlot string, orders []dao.ScheduledOrder) string {
	var b strings.Builder

	b.WriteString("======= KITCHEN ORDER TICKET =======\n")
	fmt.Fprintf(&b, "Ticket: KOT-%s\n", shortID())
	if at, ok := domain.SlotSchedule[timeSlot]; ok {
		fmt.Fprintf(&b, "Slot:   %s (%s)\n", timeSlot, at)
	} else {
		fmt.Fprintf(&b, "Slot:   %s\n", timeSlot)
	}
	b.WriteString("------------------------------------\n")

	byPlan := make(map[string][]dao.ScheduledOrder)
	for _, o := range orders {
		byPlan[o.PlanName] = append(byPlan[o.PlanName], o)
	}
	plans := make([]string, 0, len(byPlan))
	for plan := range byPlan {
		plans = append(plans, plan)
	}
	sort.Strings(plans)

	total := 0
	for _, plan := range plans {
		fmt.Fprintf(&b, "[%s]\n", plan)
		group := byPlan[plan]
		sort.Slice(group, func(i, j int) bool { return group[i].Number < group[j].Number })
		for _, o := range group {
			fmt.Fprintf(&b, "  %s\n", o.Number)
			items := make([]dao.Item, len(o.Items))
			copy(items, o.Items)
			sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
			for _, item := range items {
				fmt.Fprintf(&b, "    %d x %s\n", item.Quantity, item.Name)
				total += item.Quantity
			}
		}
	}

	b.WriteString("------------------------------------\n")
	fmt.Fprintf(&b, "Total items: %d\n", total)
	return b.String()
}

func shortID() string {
	return uuid.NewString()[:8]
}
