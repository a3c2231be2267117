package timer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Taraldinn/hear-hear-bot-sub000/locale"
)

func TestRefusalForControlErrors(t *testing.T) {
	tests := []struct {
		err  error
		want locale.Refusal
	}{
		{ErrDurationOutOfRange, locale.RefusalDurationOutOfRange},
		{ErrAlreadyRunning, locale.RefusalAlreadyRunning},
		{ErrNoTimer, locale.RefusalNoTimer},
		{ErrNotOwner, locale.RefusalNotOwner},
		{ErrAdminRequired, locale.RefusalAdminRequired},
	}
	for _, tt := range tests {
		got, ok := RefusalFor(tt.err)
		require.True(t, ok, "%v", tt.err)
		require.Equal(t, tt.want, got)

		// wrapped errors still map
		got, ok = RefusalFor(fmt.Errorf("handling command: %w", tt.err))
		require.True(t, ok)
		require.Equal(t, tt.want, got)
	}
}

func TestRefusalForOtherErrors(t *testing.T) {
	_, ok := RefusalFor(errors.New("gateway down"))
	require.False(t, ok)
	_, ok = RefusalFor(&AdapterError{Kind: AdapterRateLimited})
	require.False(t, ok)
}
