package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dining-system/internal/apperr"
	"dining-system/internal/microservices/dining/domain/dao"
)

type TablesPG struct {
	db *sql.DB
}

func NewTablesPG(db *sql.DB) *TablesPG { return &TablesPG{db: db} }

func (r *TablesPG) Add(ctx context.Context, t dao.Table) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dining_tables (id, branch_id, name, custom_url, is_enabled, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, t.ID, t.BranchID, t.Name, t.CustomURL, t.IsEnabled, t.Status)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

func (r *TablesPG) ListEnabled(ctx context.Context, branchID string) ([]dao.Table, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, branch_id, name, custom_url, is_enabled, status, position
		FROM dining_tables
		WHERE branch_id = $1 AND is_enabled
		ORDER BY position
	`, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	out := make([]dao.Table, 0)
	for rows.Next() {
		var t dao.Table
		if err := rows.Scan(&t.ID, &t.BranchID, &t.Name, &t.CustomURL, &t.IsEnabled, &t.Status, &t.Position); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TablesPG) SetStatus(ctx context.Context, branchID, tableID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dining_tables SET status = $3, updated_at = NOW()
		WHERE branch_id = $1 AND id = $2
	`, branchID, tableID, status)
	if err != nil {
		return fmt.Errorf("failed to update table status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("table", tableID)
	}
	return nil
}
