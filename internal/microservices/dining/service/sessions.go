package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
)

// OpenSession starts a new active session for a table. At most one active
// session may exist per (branch, table); a concurrent double-open loses with
// a conflict. The check-then-create is atomic inside the session store.
func (s *DiningService) OpenSession(ctx context.Context, branchID, tableName string) (dao.DiningSession, error) {
	if branchID == "" || tableName == "" {
		return dao.DiningSession{}, apperr.InvalidArgument("session", "branch id and table name are required")
	}

	session := dao.DiningSession{
		ID:          uuid.NewString(),
		BranchID:    branchID,
		TableName:   tableName,
		Status:      domain.SessionActive,
		TotalAmount: decimal.Zero,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.sessions.CreateActive(ctx, session); err != nil {
		return dao.DiningSession{}, err
	}

	s.lg.Info("session_opened", map[string]any{
		"session_id": session.ID, "branch_id": branchID, "table_name": tableName,
	})
	s.publish(ctx, domain.KeySessionOpened, domain.SessionEvent{
		SessionID:   session.ID,
		BranchID:    branchID,
		TableName:   tableName,
		Status:      session.Status,
		TotalAmount: session.TotalAmount,
		OccurredAt:  session.CreatedAt,
	})
	return session, nil
}

func (s *DiningService) GetActiveSession(ctx context.Context, branchID, tableName string) (dao.DiningSession, error) {
	return s.sessions.GetActive(ctx, branchID, tableName)
}

// CompleteSession closes an active session once every order on it is served.
// A table cannot be closed while food is still owed. Completion does not
// touch table occupancy: freeing the table is a separate staff decision
// through SetTableStatus.
func (s *DiningService) CompleteSession(ctx context.Context, sessionID string) (dao.DiningSession, error) {
	session, err := s.sessions.CompleteIfServed(ctx, sessionID)
	if err != nil {
		return dao.DiningSession{}, err
	}

	s.lg.Info("session_completed", map[string]any{
		"session_id": session.ID, "total_amount": session.TotalAmount.String(),
	})
	s.publish(ctx, domain.KeySessionCompleted, domain.SessionEvent{
		SessionID:   session.ID,
		BranchID:    session.BranchID,
		TableName:   session.TableName,
		Status:      session.Status,
		TotalAmount: session.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	})
	return session, nil
}

// RequestPayment flags an active session as awaiting the bill. Idempotent.
func (s *DiningService) RequestPayment(ctx context.Context, sessionID string) error {
	if err := s.sessions.RequestPayment(ctx, sessionID); err != nil {
		return err
	}
	s.lg.Info("payment_requested", map[string]any{"session_id": sessionID})
	return nil
}
