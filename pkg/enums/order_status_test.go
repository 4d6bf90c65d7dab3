package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitionTable(t *testing.T) {
	legal := map[OrderStatus]map[OrderStatus]bool{
		OrderStatusCreated:   {OrderStatusConfirmed: true, OrderStatusCancelled: true},
		OrderStatusConfirmed: {OrderStatusPreparing: true, OrderStatusCancelled: true},
		OrderStatusPreparing: {OrderStatusReady: true, OrderStatusCancelled: true},
		OrderStatusReady:     {OrderStatusCompleted: true, OrderStatusCancelled: true},
		OrderStatusCompleted: {},
		OrderStatusCancelled: {},
	}

	// every (from, to) pair is checked so the table cannot drift silently
	for _, from := range OrderStatuses() {
		for _, to := range OrderStatuses() {
			want := legal[from][to]
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusSkippingConfirmedIsRejected(t *testing.T) {
	assert.False(t, OrderStatusCreated.CanTransitionTo(OrderStatusPreparing))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	for _, s := range []OrderStatus{OrderStatusCreated, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		assert.Falsef(t, s.IsTerminal(), "%s should not be terminal", s)
		assert.Truef(t, s.CanTransitionTo(OrderStatusCancelled), "%s should allow cancellation", s)
	}
}

func TestParseOrderStatus(t *testing.T) {
	parsed, err := ParseOrderStatus("preparing")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPreparing, parsed)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestParseOrderType(t *testing.T) {
	parsed, err := ParseOrderType("takeaway")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeTakeaway, parsed)

	_, err = ParseOrderType("drive_through")
	assert.Error(t, err)
}
