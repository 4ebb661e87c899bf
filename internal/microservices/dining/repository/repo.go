package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dining-system/internal/microservices/dining/domain/dao"
)

// Tables is the branch table registry. Occupancy is written only through
// SetStatus; enable/name changes belong to branch configuration.
type Tables interface {
	Add(ctx context.Context, t dao.Table) error
	ListEnabled(ctx context.Context, branchID string) ([]dao.Table, error)
	SetStatus(ctx context.Context, branchID, tableID, status string) error
}

// Sessions owns the per-table session lifecycle. CreateActive and
// CompleteIfServed are atomic: the uniqueness check and the all-served check
// are evaluated inside the same critical section as the write.
type Sessions interface {
	CreateActive(ctx context.Context, s dao.DiningSession) error
	GetByID(ctx context.Context, id string) (dao.DiningSession, error)
	GetActive(ctx context.Context, branchID, tableName string) (dao.DiningSession, error)
	CompleteIfServed(ctx context.Context, id string) (dao.DiningSession, error)
	RequestPayment(ctx context.Context, id string) error
}

// Orders is the per-session order ledger. CreateWithTotal allocates the
// order's daily number, records the order and applies its total to the
// session in one atomic step, or not at all; the returned order carries the
// assigned number.
type Orders interface {
	CreateWithTotal(ctx context.Context, o dao.DiningOrder) (dao.DiningOrder, error)
	AdvanceStatus(ctx context.Context, orderID, next string) (order dao.DiningOrder, changed bool, err error)
	ListBySession(ctx context.Context, sessionID string) ([]dao.DiningOrder, error)
}

type Repository struct {
	Tables   Tables
	Sessions Sessions
	Orders   Orders
}

func New(db *sql.DB) *Repository {
	return &Repository{
		Tables:   NewTablesPG(db),
		Sessions: NewSessionsPG(db),
		Orders:   NewOrdersPG(db),
	}
}

// orderNumber formats the daily order number, e.g. ORD_20260901_042.
func orderNumber(date string, seq int) string {
	return fmt.Sprintf("ORD_%s_%03d", strings.ReplaceAll(date, "-", ""), seq)
}
