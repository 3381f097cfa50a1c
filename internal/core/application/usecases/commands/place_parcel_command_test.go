package commands_test

import (
	"testing"

	"lockerhub/internal/core/application/usecases/commands"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceParcelCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	filter := ports.LockerFilter{City: "Springfield"}

	cmd, err := commands.NewPlaceParcelCommand(courierIdentity(t), id, filter)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.ParcelID())
	assert.Equal(t, filter, cmd.Filter())
}

func TestNewPlaceParcelCommand_EmptyFilter(t *testing.T) {
	_, err := commands.NewPlaceParcelCommand(courierIdentity(t), kernel.NewUUID(), ports.LockerFilter{})
	require.Error(t, err)
}

func TestNewPlaceParcelCommand_InvalidParcelID(t *testing.T) {
	filter := ports.LockerFilter{DeviceID: "LOC-1"}
	_, err := commands.NewPlaceParcelCommand(courierIdentity(t), kernel.UUID{}, filter)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
