package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
)

type SessionsPG struct {
	db *sql.DB
}

func NewSessionsPG(db *sql.DB) *SessionsPG { return &SessionsPG{db: db} }

// CreateActive inserts a new active session. The check-then-insert runs in
// one transaction; the partial unique index on (branch_id, table_name) WHERE
// status='active' backstops races between connections.
func (r *SessionsPG) CreateActive(ctx context.Context, s dao.DiningSession) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM dining_sessions
		WHERE branch_id = $1 AND table_name = $2 AND status = $3
		FOR UPDATE
	`, s.BranchID, s.TableName, domain.SessionActive).Scan(&existingID)
	switch {
	case err == nil:
		return apperr.Conflict("session", existingID, "table already has an active session")
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to check active session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dining_sessions
		    (id, branch_id, table_name, status, total_amount, payment_requested, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.ID, s.BranchID, s.TableName, s.Status, s.TotalAmount, s.PaymentRequested, s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("session", s.BranchID+"/"+s.TableName, "table already has an active session")
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return tx.Commit()
}

func (r *SessionsPG) GetByID(ctx context.Context, id string) (dao.DiningSession, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, branch_id, table_name, status, total_amount, payment_requested, created_at
		FROM dining_sessions WHERE id = $1
	`, id), id)
}

func (r *SessionsPG) GetActive(ctx context.Context, branchID, tableName string) (dao.DiningSession, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, branch_id, table_name, status, total_amount, payment_requested, created_at
		FROM dining_sessions
		WHERE branch_id = $1 AND table_name = $2 AND status = $3
	`, branchID, tableName, domain.SessionActive), branchID+"/"+tableName)
}

func (r *SessionsPG) scanOne(row *sql.Row, id string) (dao.DiningSession, error) {
	var s dao.DiningSession
	err := row.Scan(&s.ID, &s.BranchID, &s.TableName, &s.Status, &s.TotalAmount, &s.PaymentRequested, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return dao.DiningSession{}, apperr.NotFound("session", id)
	}
	if err != nil {
		return dao.DiningSession{}, fmt.Errorf("failed to load session: %w", err)
	}
	return s, nil
}

// CompleteIfServed transitions an active session to completed iff every
// order attached to it is served. The row lock keeps racing SubmitOrder
// calls out until the precondition check and the update commit together.
func (r *SessionsPG) CompleteIfServed(ctx context.Context, id string) (dao.DiningSession, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dao.DiningSession{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	s, err := r.scanOne(tx.QueryRowContext(ctx, `
		SELECT id, branch_id, table_name, status, total_amount, payment_requested, created_at
		FROM dining_sessions WHERE id = $1
		FOR UPDATE
	`, id), id)
	if err != nil {
		return dao.DiningSession{}, err
	}
	if s.Status != domain.SessionActive {
		return dao.DiningSession{}, apperr.FailedPrecondition("session", id, "session is not active")
	}

	var unserved int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dining_orders WHERE session_id = $1 AND status <> $2
	`, id, domain.OrderServed).Scan(&unserved); err != nil {
		return dao.DiningSession{}, fmt.Errorf("failed to count unserved orders: %w", err)
	}
	if unserved > 0 {
		return dao.DiningSession{}, apperr.FailedPrecondition("session", id,
			fmt.Sprintf("%d orders are not served yet", unserved))
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE dining_sessions SET status = $2 WHERE id = $1
	`, id, domain.SessionCompleted); err != nil {
		return dao.DiningSession{}, fmt.Errorf("failed to complete session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return dao.DiningSession{}, err
	}
	s.Status = domain.SessionCompleted
	return s, nil
}

func (r *SessionsPG) RequestPayment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dining_sessions SET payment_requested = TRUE
		WHERE id = $1 AND status = $2
	`, id, domain.SessionActive)
	if err != nil {
		return fmt.Errorf("failed to request payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperr.FailedPrecondition("session", id, "session is not active")
	}
	return nil
}
