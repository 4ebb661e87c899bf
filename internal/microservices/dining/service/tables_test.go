package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dao"
	"dining-system/internal/microservices/dining/repository"
)

func seedTables(t *testing.T, mem *repository.Memory) {
	t.Helper()
	for _, table := range []dao.Table{
		{ID: "t1", BranchID: "branch-1", Name: "T1", IsEnabled: true, Status: domain.TableAvailable},
		{ID: "t2", BranchID: "branch-1", Name: "T2", IsEnabled: false, Status: domain.TableAvailable},
		{ID: "t3", BranchID: "branch-1", Name: "T3", IsEnabled: true, Status: domain.TableAvailable},
		{ID: "x1", BranchID: "branch-2", Name: "X1", IsEnabled: true, Status: domain.TableAvailable},
	} {
		require.NoError(t, mem.Add(context.Background(), table))
	}
}

func TestListEnabledTables(t *testing.T) {
	svc, mem, _ := newTestService()
	seedTables(t, mem)

	tables, err := svc.ListEnabledTables(context.Background(), "branch-1")
	require.NoError(t, err)
	require.Len(t, tables, 2, "disabled and foreign-branch tables are filtered out")

	// Registry (insertion) order is preserved.
	assert.Equal(t, "T1", tables[0].Name)
	assert.Equal(t, "T3", tables[1].Name)

	_, err = svc.ListEnabledTables(context.Background(), "")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestSetTableStatus(t *testing.T) {
	svc, mem, _ := newTestService()
	seedTables(t, mem)
	ctx := context.Background()

	require.NoError(t, svc.SetTableStatus(ctx, "branch-1", "t1", domain.TableOccupied))
	// Idempotent: repeating the same status succeeds.
	require.NoError(t, svc.SetTableStatus(ctx, "branch-1", "t1", domain.TableOccupied))

	tables, err := svc.ListEnabledTables(ctx, "branch-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tables[0].Status)

	err = svc.SetTableStatus(ctx, "branch-1", "t1", "reserved")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	err = svc.SetTableStatus(ctx, "branch-1", "nope", domain.TableAvailable)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCompleteSessionLeavesTableStatusAlone(t *testing.T) {
	svc, mem, _ := newTestService()
	seedTables(t, mem)
	ctx := context.Background()

	require.NoError(t, svc.SetTableStatus(ctx, "branch-1", "t1", domain.TableOccupied))
	session, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)
	_, err = svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)

	// Freeing the table is a separate staff decision.
	tables, err := svc.ListEnabledTables(ctx, "branch-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, tables[0].Status)
}
