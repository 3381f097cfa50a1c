package commands_test

import (
	"testing"
	"time"

	"lockerhub/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReleaseExpiredReservationsCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewReleaseExpiredReservationsCommand(15 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cmd.TTL())
}

func TestNewReleaseExpiredReservationsCommand_NonPositiveTTL(t *testing.T) {
	_, err := commands.NewReleaseExpiredReservationsCommand(0)
	require.Error(t, err)

	_, err = commands.NewReleaseExpiredReservationsCommand(-time.Minute)
	require.Error(t, err)
}
