package service

import (
	"context"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
)

// ListEnabledTables returns the branch's enabled tables in registry order.
func (s *DiningService) ListEnabledTables(ctx context.Context, branchID string) ([]dao.Table, error) {
	if branchID == "" {
		return nil, apperr.InvalidArgument("table", "branch id is required")
	}
	return s.tables.ListEnabled(ctx, branchID)
}

// SetTableStatus is the only externally invokable occupancy mutator.
// Setting the current status again is a no-op success.
func (s *DiningService) SetTableStatus(ctx context.Context, branchID, tableID, status string) error {
	if !domain.ValidTableStatus(status) {
		return apperr.InvalidArgument("table", "status must be 'available' or 'occupied', got '"+status+"'")
	}
	if err := s.tables.SetStatus(ctx, branchID, tableID, status); err != nil {
		return err
	}
	s.lg.Debug("table_status_set", map[string]any{"branch_id": branchID, "table_id": tableID, "status": status})
	return nil
}
