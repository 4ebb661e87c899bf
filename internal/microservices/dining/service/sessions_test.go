package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-system/internal/apperr"
	"dining-system/internal/domain"
	"dining-system/internal/microservices/dining/domain/dto"
)

func TestOpenSession_SecondOpenConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, first.Status)
	assert.True(t, first.TotalAmount.IsZero())

	_, err = svc.OpenSession(ctx, "branch-1", "T1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// A different table on the same branch is unaffected.
	_, err = svc.OpenSession(ctx, "branch-1", "T2")
	assert.NoError(t, err)
}

func TestOpenSession_ConcurrentOpensOneWinner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.OpenSession(ctx, "branch-1", "T1")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent open must succeed")
}

func TestGetActiveSession(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.GetActiveSession(ctx, "branch-1", "T1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	opened, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)

	got, err := svc.GetActiveSession(ctx, "branch-1", "T1")
	require.NoError(t, err)
	assert.Equal(t, opened.ID, got.ID)
}

func TestCompleteSession_GatedOnServedOrders(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)

	first, err := svc.SubmitOrder(ctx, session.ID, dto.SubmitOrderRequest{Items: []dto.OrderItemInput{item("Soup", 1, "4.50")}})
	require.NoError(t, err)
	second, err := svc.SubmitOrder(ctx, session.ID, dto.SubmitOrderRequest{Items: []dto.OrderItemInput{item("Stew", 1, "9.00")}})
	require.NoError(t, err)

	serve := func(orderID string) {
		t.Helper()
		_, err := svc.AdvanceOrderStatus(ctx, orderID, domain.OrderAccepted)
		require.NoError(t, err)
		_, err = svc.AdvanceOrderStatus(ctx, orderID, domain.OrderServed)
		require.NoError(t, err)
	}

	serve(first.OrderID)

	// One order still accepted/pending blocks completion.
	_, err = svc.CompleteSession(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))

	serve(second.OrderID)

	completed, err := svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, completed.Status)

	// Completion is terminal.
	_, err = svc.CompleteSession(ctx, session.ID)
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))

	// No new orders on a completed session.
	_, err = svc.SubmitOrder(ctx, session.ID, dto.SubmitOrderRequest{Items: []dto.OrderItemInput{item("Tea", 1, "2.00")}})
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))

	// The table can be reopened for the next party.
	_, err = svc.OpenSession(ctx, "branch-1", "T1")
	assert.NoError(t, err)
}

func TestCompleteSession_EmptySessionCompletes(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	session, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)

	// No orders owed, nothing gates completion.
	completed, err := svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, completed.Status)
}

func TestRequestPayment(t *testing.T) {
	svc, mem, _ := newTestService()
	ctx := context.Background()

	err := svc.RequestPayment(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	session, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPayment(ctx, session.ID))
	// Idempotent.
	require.NoError(t, svc.RequestPayment(ctx, session.ID))

	got, err := mem.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, got.PaymentRequested)
}

func TestSessionEventsPublished(t *testing.T) {
	svc, _, rec := newTestService()
	ctx := context.Background()

	session, err := svc.OpenSession(ctx, "branch-1", "T1")
	require.NoError(t, err)
	_, err = svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{domain.KeySessionOpened, domain.KeySessionCompleted}, rec.published())
}
