package workflow

import (
	apperrors "drilltrack/pkg/errors"
)

// WorkOrderStatus is a closed enum. The upstream system shuffled raw
// strings around; keeping the set closed lets the transition table be
// exhaustive and invalid states unrepresentable past the parse boundary.
type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderApproved   WorkOrderStatus = "approved"
	WorkOrderScheduled  WorkOrderStatus = "scheduled"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderInvoiced   WorkOrderStatus = "invoiced"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

// workOrderTransitions holds every legal edge: the forward chain, the
// symmetric rollback per step, reopen from completed, reactivate from
// cancelled, and the informal completed -> invoiced hop. Rig/crew
// assignment is deliberately NOT a precondition for entering scheduled;
// that coupling is caller policy, not state-machine law.
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderPending:    {WorkOrderApproved, WorkOrderCancelled},
	WorkOrderApproved:   {WorkOrderScheduled, WorkOrderPending},
	WorkOrderScheduled:  {WorkOrderInProgress, WorkOrderApproved},
	WorkOrderInProgress: {WorkOrderCompleted, WorkOrderScheduled},
	WorkOrderCompleted:  {WorkOrderInvoiced, WorkOrderInProgress},
	WorkOrderInvoiced:   {},
	WorkOrderCancelled:  {WorkOrderPending},
}

// statusRank orders the forward chain so callers can ask "at or past
// scheduled" without enumerating statuses. Cancelled and invoiced sit
// outside the chain.
var workOrderRank = map[WorkOrderStatus]int{
	WorkOrderPending:    0,
	WorkOrderApproved:   1,
	WorkOrderScheduled:  2,
	WorkOrderInProgress: 3,
	WorkOrderCompleted:  4,
	WorkOrderInvoiced:   5,
}

func ParseWorkOrderStatus(s string) (WorkOrderStatus, error) {
	status := WorkOrderStatus(s)
	if _, ok := workOrderTransitions[status]; !ok {
		return "", apperrors.NewValidationError("unknown work order status %q", s)
	}
	return status, nil
}

func (s WorkOrderStatus) String() string { return string(s) }

// AtOrPast reports whether s has reached other on the forward chain.
// Cancelled never counts as being past anything.
func (s WorkOrderStatus) AtOrPast(other WorkOrderStatus) bool {
	rs, ok := workOrderRank[s]
	if !ok {
		return false
	}
	ro, ok := workOrderRank[other]
	if !ok {
		return false
	}
	return rs >= ro
}

// CanTransitionWorkOrder reports whether from -> to is a legal edge.
func CanTransitionWorkOrder(from, to WorkOrderStatus) bool {
	for _, allowed := range workOrderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionWorkOrder validates the edge and returns the new status. It
// is a pure status check: no side effects, no resource preconditions.
func TransitionWorkOrder(from, to WorkOrderStatus) (WorkOrderStatus, error) {
	if !CanTransitionWorkOrder(from, to) {
		return from, apperrors.NewInvalidTransitionError("work order", string(from), string(to))
	}
	return to, nil
}
