package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus_ExactMatchOnly(t *testing.T) {
	for _, status := range Statuses() {
		parsed, err := ParseStatus(string(status))
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}

	for _, raw := range []string{"", "pending", "Paid", "PAID ", "REFUNDED"} {
		_, err := ParseStatus(raw)
		require.ErrorIs(t, err, ErrInvalidStatus, raw)
	}
}

func TestCanTransitionTo_Table(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusPendingPayment, true},
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPendingPayment, StatusPaid, true},
		{StatusPendingPayment, StatusPending, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusPaid, false},
		{StatusPaid, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{Status("UNKNOWN"), StatusPaid, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			require.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAllowedTransitions_ReturnsCopy(t *testing.T) {
	targets := StatusPending.AllowedTransitions()
	require.NotEmpty(t, targets)
	targets[0] = StatusDelivered
	require.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	require.Empty(t, StatusDelivered.AllowedTransitions())
}

func TestStatusColor(t *testing.T) {
	require.Equal(t, "orange", StatusPending.Color())
	require.Equal(t, "green", StatusPaid.Color())
	require.Equal(t, "grey", Status("UNKNOWN").Color())
}
