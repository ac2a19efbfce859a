package invitation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAcceptIntent(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"accepted", true},
		{"accept", true},
		{"approve", true},
		{"ok", true},
		{"yes", true},
		{"ACCEPTED", true},
		{" Accept ", true},
		{"pending", false},
		{"rejected", false},
		{"declined", false},
		{"", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAcceptIntent(tt.input))
		})
	}
}

func TestInvitation_StatusTransitions(t *testing.T) {
	inv, err := NewInvitation(1, 2, 3)
	require.NoError(t, err)
	assert.True(t, inv.IsPending())

	require.NoError(t, inv.Accept())
	assert.Equal(t, StatusAccepted, inv.Status())

	// accepting again is a no-op
	require.NoError(t, inv.Accept())

	// cannot decline after accepting
	assert.Error(t, inv.Decline())
}

func TestNewInvitation_Validation(t *testing.T) {
	_, err := NewInvitation(0, 2, 3)
	assert.Error(t, err)

	_, err = NewInvitation(1, 2, 2)
	assert.Error(t, err, "self invitation")
}
