package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "drilltrack/pkg/errors"
)

func TestTransitionWorkOrder_ForwardChain(t *testing.T) {
	chain := []WorkOrderStatus{
		WorkOrderPending, WorkOrderApproved, WorkOrderScheduled,
		WorkOrderInProgress, WorkOrderCompleted, WorkOrderInvoiced,
	}
	for i := 0; i < len(chain)-1; i++ {
		got, err := TransitionWorkOrder(chain[i], chain[i+1])
		require.NoError(t, err, "%s -> %s should be legal", chain[i], chain[i+1])
		assert.Equal(t, chain[i+1], got)
	}
}

func TestTransitionWorkOrder_Rollbacks(t *testing.T) {
	rollbacks := map[WorkOrderStatus]WorkOrderStatus{
		WorkOrderApproved:   WorkOrderPending,
		WorkOrderScheduled:  WorkOrderApproved,
		WorkOrderInProgress: WorkOrderScheduled,
		WorkOrderCompleted:  WorkOrderInProgress, // reopen
		WorkOrderCancelled:  WorkOrderPending,    // reactivate
	}
	for from, to := range rollbacks {
		got, err := TransitionWorkOrder(from, to)
		require.NoError(t, err, "%s -> %s should be legal", from, to)
		assert.Equal(t, to, got)
	}
}

func TestTransitionWorkOrder_IllegalEdges(t *testing.T) {
	cases := []struct {
		from, to WorkOrderStatus
	}{
		{WorkOrderPending, WorkOrderScheduled},
		{WorkOrderPending, WorkOrderCompleted},
		{WorkOrderApproved, WorkOrderInProgress},
		{WorkOrderApproved, WorkOrderCancelled},
		{WorkOrderScheduled, WorkOrderCompleted},
		{WorkOrderScheduled, WorkOrderPending},
		{WorkOrderCompleted, WorkOrderPending},
		{WorkOrderCompleted, WorkOrderScheduled},
		{WorkOrderInvoiced, WorkOrderCompleted},
		{WorkOrderInvoiced, WorkOrderPending},
		{WorkOrderCancelled, WorkOrderApproved},
		{WorkOrderCancelled, WorkOrderScheduled},
	}
	for _, tc := range cases {
		got, err := TransitionWorkOrder(tc.from, tc.to)
		require.Error(t, err, "%s -> %s should be rejected", tc.from, tc.to)
		assert.Equal(t, tc.from, got, "status must be unchanged on failure")

		var transitionErr *apperrors.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, string(tc.from), transitionErr.From)
		assert.Equal(t, string(tc.to), transitionErr.To)
	}
}

func TestTransitionWorkOrder_ReopenScenario(t *testing.T) {
	// completed -> in_progress succeeds, completed -> pending does not
	got, err := TransitionWorkOrder(WorkOrderCompleted, WorkOrderInProgress)
	require.NoError(t, err)
	assert.Equal(t, WorkOrderInProgress, got)

	_, err = TransitionWorkOrder(WorkOrderCompleted, WorkOrderPending)
	var transitionErr *apperrors.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
}

func TestWorkOrderStatus_AtOrPast(t *testing.T) {
	assert.True(t, WorkOrderScheduled.AtOrPast(WorkOrderScheduled))
	assert.True(t, WorkOrderInProgress.AtOrPast(WorkOrderScheduled))
	assert.True(t, WorkOrderCompleted.AtOrPast(WorkOrderApproved))
	assert.False(t, WorkOrderPending.AtOrPast(WorkOrderScheduled))
	assert.False(t, WorkOrderApproved.AtOrPast(WorkOrderScheduled))
	assert.False(t, WorkOrderCancelled.AtOrPast(WorkOrderPending), "cancelled is outside the forward chain")
}

func TestParseWorkOrderStatus(t *testing.T) {
	status, err := ParseWorkOrderStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, WorkOrderInProgress, status)

	_, err = ParseWorkOrderStatus("in-progress")
	require.Error(t, err)

	_, err = ParseWorkOrderStatus("")
	require.Error(t, err)
}
