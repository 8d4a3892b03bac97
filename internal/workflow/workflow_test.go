package workflow

import (
	"testing"

	"github.com/naseej-app/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextNominalLifecycle(t *testing.T) {
	opts := Options{
		Inbound:  constants.InboundBusinessPickup,
		Outbound: constants.OutboundBusinessDelivery,
	}

	tests := []struct {
		name    string
		current State
		event   Event
		want    State
	}{
		{"approve", StatePendingApproval, EventApprove, StateApproved},
		{"reject", StatePendingApproval, EventReject, StateRejected},
		{"start preparing", StateApproved, EventStartPreparing, StatePreparing},
		{"prepare after dropoff", StateAwaitingDropoff, EventStartPreparing, StatePreparing},
		{"mark ready", StatePreparing, EventMarkReady, StateReadyForPickup},
		{"dispatch", StatePreparing, EventDispatchDriver, StateDispatched},
		{"start delivery", StateDispatched, EventStartDelivery, StateOutForDelivery},
		{"complete delivery", StateOutForDelivery, EventComplete, StateCompleted},
		{"complete pickup", StateReadyForPickup, EventComplete, StateCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.current, tt.event, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextDropoffOverride(t *testing.T) {
	got, err := Next(StatePendingApproval, EventApprove, Options{
		Inbound:  constants.InboundCustomerDropoff,
		Outbound: constants.OutboundBusinessDelivery,
	})
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingDropoff, got, "approving a drop-off request must wait for the goods")
}

func TestNextCustomerPickupOverride(t *testing.T) {
	opts := Options{
		Inbound:  constants.InboundBusinessPickup,
		Outbound: constants.OutboundCustomerPickup,
	}

	got, err := Next(StateApproved, EventStartPreparing, opts)
	require.NoError(t, err)
	assert.Equal(t, StateReadyForPickup, got)

	got, err = Next(StateAwaitingDropoff, EventStartPreparing, opts)
	require.NoError(t, err)
	assert.Equal(t, StateReadyForPickup, got)
}

func TestNextCancelFromAnyNonTerminalState(t *testing.T) {
	for _, s := range States() {
		if s.Terminal() {
			continue
		}
		got, err := Next(s, EventCancel, Options{})
		require.NoError(t, err, "cancel from %s", s)
		assert.Equal(t, StateCancelled, got)
	}
}

func TestNextTerminalStatesRefuseEverything(t *testing.T) {
	events := []Event{
		EventApprove, EventReject, EventStartPreparing, EventMarkReady,
		EventDispatchDriver, EventStartDelivery, EventComplete, EventCancel,
	}
	for _, s := range []State{StateCompleted, StateRejected, StateCancelled} {
		for _, ev := range events {
			_, err := Next(s, ev, Options{})
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", ev, s)
		}
	}
}

func TestNextRejectTwiceIsInvalid(t *testing.T) {
	// Deterministic double-reject behavior: refused, never re-logged.
	_, err := Next(StateRejected, EventReject, Options{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextInvalidEventFromValidState(t *testing.T) {
	_, err := Next(StatePendingApproval, EventStartDelivery, Options{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextUnknownState(t *testing.T) {
	_, err := Next(State("Ironing"), EventApprove, Options{})
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestTerminal(t *testing.T) {
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.False(t, StatePendingApproval.Terminal())
	assert.False(t, StateOutForDelivery.Terminal())
}

func TestValid(t *testing.T) {
	for _, s := range States() {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, State("Folding").Valid())
}
