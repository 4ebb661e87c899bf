package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
)

// Memory is an in-memory implementation of Tables, Sessions and Orders
// backing tests and local runs. A single mutex covers all three stores, so
// every operation sees a consistent snapshot of sessions and their orders.
type Memory struct {
	mu       sync.Mutex
	tables   []dao.Table
	sessions map[string]dao.DiningSession
	orders   map[string]dao.DiningOrder
	numbers  map[string]int // per-date order number counter
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]dao.DiningSession),
		orders:   make(map[string]dao.DiningOrder),
		numbers:  make(map[string]int),
	}
}

// --- Tables ---

func (m *Memory) Add(ctx context.Context, t dao.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.Position = len(m.tables)
	m.tables = append(m.tables, t)
	return nil
}

func (m *Memory) ListEnabled(ctx context.Context, branchID string) ([]dao.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dao.Table, 0)
	for _, t := range m.tables {
		if t.BranchID == branchID && t.IsEnabled {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) SetStatus(ctx context.Context, branchID, tableID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tables {
		if m.tables[i].BranchID == branchID && m.tables[i].ID == tableID {
			m.tables[i].Status = status
			return nil
		}
	}
	return apperr.NotFound("table", tableID)
}

// --- Sessions ---

func (m *Memory) CreateActive(ctx context.Context, s dao.DiningSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.BranchID == s.BranchID && existing.TableName == s.TableName &&
			existing.Status == domain.SessionActive {
			return apperr.Conflict("session", existing.ID, "table already has an active session")
		}
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *Memory) GetByID(ctx context.Context, id string) (dao.DiningSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return dao.DiningSession{}, apperr.NotFound("session", id)
	}
	return s, nil
}

func (m *Memory) GetActive(ctx context.Context, branchID, tableName string) (dao.DiningSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.BranchID == branchID && s.TableName == tableName && s.Status == domain.SessionActive {
			return s, nil
		}
	}
	return dao.DiningSession{}, apperr.NotFound("session", branchID+"/"+tableName)
}

func (m *Memory) CompleteIfServed(ctx context.Context, id string) (dao.DiningSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return dao.DiningSession{}, apperr.NotFound("session", id)
	}
	if s.Status != domain.SessionActive {
		return dao.DiningSession{}, apperr.FailedPrecondition("session", id, "session is not active")
	}
	for _, o := range m.orders {
		if o.SessionID == id && o.Status != domain.OrderServed {
			return dao.DiningSession{}, apperr.FailedPrecondition("session", id,
				"order "+o.ID+" is still "+o.Status)
		}
	}
	s.Status = domain.SessionCompleted
	m.sessions[id] = s
	return s, nil
}

func (m *Memory) RequestPayment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return apperr.NotFound("session", id)
	}
	if s.Status != domain.SessionActive {
		return apperr.FailedPrecondition("session", id, "session is not active")
	}
	s.PaymentRequested = true
	m.sessions[id] = s
	return nil
}

// --- Orders ---

func (m *Memory) CreateWithTotal(ctx context.Context, o dao.DiningOrder) (dao.DiningOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[o.SessionID]
	if !ok {
		return dao.DiningOrder{}, apperr.NotFound("session", o.SessionID)
	}
	if s.Status != domain.SessionActive {
		return dao.DiningOrder{}, apperr.FailedPrecondition("session", o.SessionID, "session is not active")
	}

	m.numbers[o.ScheduledDate]++
	o.Number = orderNumber(o.ScheduledDate, m.numbers[o.ScheduledDate])
	for _, existing := range m.orders {
		if existing.Number == o.Number {
			return dao.DiningOrder{}, fmt.Errorf("order number %s already taken", o.Number)
		}
	}

	o.Items = cloneItems(o.Items)
	m.orders[o.ID] = o
	s.TotalAmount = s.TotalAmount.Add(o.TotalAmount)
	m.sessions[o.SessionID] = s
	return o, nil
}

func (m *Memory) AdvanceStatus(ctx context.Context, orderID, next string) (dao.DiningOrder, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return dao.DiningOrder{}, false, apperr.NotFound("order", orderID)
	}
	if next == o.Status {
		return o, false, nil
	}
	if !domain.CanTransition(o.Status, next) {
		return dao.DiningOrder{}, false, apperr.InvalidTransition("order", orderID,
			o.Status+" -> "+next+" is not allowed")
	}
	o.Status = next
	m.orders[orderID] = o
	return o, true, nil
}

func (m *Memory) ListBySession(ctx context.Context, sessionID string) ([]dao.DiningOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dao.DiningOrder, 0)
	for _, o := range m.orders {
		if o.SessionID == sessionID {
			o.Items = cloneItems(o.Items)
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Number > out[j].Number
	})
	return out, nil
}

func cloneItems(items []dao.OrderItem) []dao.OrderItem {
	out := make([]dao.OrderItem, len(items))
	copy(out, items)
	return out
}
