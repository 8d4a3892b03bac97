// Package workflow owns the request status state machine.
//
// The transition table is pure data: Next computes the effective target
// status from the current status, the triggering event, and the request's
// fulfillment options, with no database involved. Terminal statuses accept no
// further events; in particular rejecting an already rejected request is an
// ErrInvalidTransition, never a second history row.
package workflow

import (
	"errors"
	"fmt"

	"github.com/naseej-app/internal/constants"
)

// State is a request workflow status. The string value is stored verbatim in
// the requests.status column and in history rows.
type State string

const (
	StatePendingApproval State = "Pending Approval"
	StateApproved        State = "Approved"
	StateRejected        State = "Rejected"
	StateAwaitingDropoff State = "Awaiting Drop-off"
	StatePreparing       State = "Preparing Order"
	StateReadyForPickup  State = "Ready for Pickup"
	StateDispatched      State = "Driver Dispatched"
	StateOutForDelivery  State = "Out for Delivery"
	StateCompleted       State = "Completed"
	StateCancelled       State = "Cancelled"
)

// Event is a workflow trigger. Each HTTP endpoint hardcodes exactly one
// event; callers never supply a target status string.
type Event string

const (
	EventApprove        Event = "approve"
	EventReject         Event = "reject"
	EventStartPreparing Event = "start_preparing"
	EventMarkReady      Event = "mark_ready"
	EventDispatchDriver Event = "dispatch_driver"
	EventStartDelivery  Event = "start_delivery"
	EventComplete       Event = "complete"
	EventCancel         Event = "cancel"
)

// Options carries the per-request fulfillment configuration that bends the
// effective transition target.
type Options struct {
	Inbound  string
	Outbound string
}

var (
	ErrUnknownState      = errors.New("unknown workflow state")
	ErrInvalidTransition = errors.New("invalid workflow transition")
)

// transitions maps current state -> event -> nominal target. Effective
// targets (the drop-off and customer-pickup overrides) are applied on top by
// Next. Cancel is handled separately so it stays valid from every
// non-terminal state without repeating it per row.
var transitions = map[State]map[Event]State{
	StatePendingApproval: {
		EventApprove: StateApproved,
		EventReject:  StateRejected,
	},
	StateApproved: {
		EventStartPreparing: StatePreparing,
	},
	StateAwaitingDropoff: {
		EventStartPreparing: StatePreparing,
	},
	StatePreparing: {
		EventMarkReady:      StateReadyForPickup,
		EventDispatchDriver: StateDispatched,
	},
	StateReadyForPickup: {
		EventComplete: StateCompleted,
	},
	StateDispatched: {
		EventStartDelivery: StateOutForDelivery,
	},
	StateOutForDelivery: {
		EventComplete: StateCompleted,
	},
	StateCompleted: {},
	StateRejected:  {},
	StateCancelled: {},
}

// Next computes the effective target state for an event.
func Next(current State, ev Event, opts Options) (State, error) {
	row, ok := transitions[current]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, current)
	}
	if ev == EventCancel {
		if current.Terminal() {
			return "", fmt.Errorf("%w: cannot cancel a %s request", ErrInvalidTransition, current)
		}
		return StateCancelled, nil
	}
	target, ok := row[ev]
	if !ok {
		return "", fmt.Errorf("%w: %s is not valid from %s", ErrInvalidTransition, ev, current)
	}
	return applyOptionOverrides(target, opts), nil
}

// applyOptionOverrides bends the nominal target per the request's
// fulfillment options: approval of a drop-off request waits for the goods,
// and preparation of a customer-pickup request lands directly on the shelf.
func applyOptionOverrides(target State, opts Options) State {
	if target == StateApproved && opts.Inbound == constants.InboundCustomerDropoff {
		return StateAwaitingDropoff
	}
	if target == StatePreparing && opts.Outbound == constants.OutboundCustomerPickup {
		return StateReadyForPickup
	}
	return target
}

// Terminal reports whether no further events are accepted from s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateRejected || s == StateCancelled
}

// Valid reports whether s is a known workflow state.
func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// States returns every known state. Order follows the nominal lifecycle.
func States() []State {
	return []State{
		StatePendingApproval,
		StateApproved,
		StateRejected,
		StateAwaitingDropoff,
		StatePreparing,
		StateReadyForPickup,
		StateDispatched,
		StateOutForDelivery,
		StateCompleted,
		StateCancelled,
	}
}
