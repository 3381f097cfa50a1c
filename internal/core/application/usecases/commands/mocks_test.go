package commands_test

import (
	"context"
	"testing"
	"time"

	"lockerhub/internal/core/application/usecases/commands"
	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/core/domain/model/parcel"
	"lockerhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLockerRepository struct{ mock.Mock }

func (m *MockLockerRepository) Add(ctx context.Context, l *locker.Locker) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLockerRepository) Update(ctx context.Context, l *locker.Locker) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLockerRepository) Get(ctx context.Context, id kernel.UUID) (*locker.Locker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*locker.Locker), args.Error(1)
}

func (m *MockLockerRepository) GetByCellID(ctx context.Context, cellID kernel.UUID) (*locker.Locker, error) {
	args := m.Called(ctx, cellID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*locker.Locker), args.Error(1)
}

func (m *MockLockerRepository) FindByFilter(
	ctx context.Context,
	filter ports.LockerFilter,
) ([]*locker.Locker, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*locker.Locker), args.Error(1)
}

func (m *MockLockerRepository) ReserveCell(ctx context.Context, cellID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, cellID, at)
	return args.Error(0)
}

func (m *MockLockerRepository) UpdateCell(ctx context.Context, cell *locker.Cell) error {
	args := m.Called(ctx, cell)
	return args.Error(0)
}

func (m *MockLockerRepository) FindWithExpiredReservations(
	ctx context.Context,
	cutoff time.Time,
) ([]*locker.Locker, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*locker.Locker), args.Error(1)
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByCellID(ctx context.Context, cellID kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, cellID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) LockerRepository() ports.LockerRepository {
	args := m.Called()
	return args.Get(0).(ports.LockerRepository)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLockerUoWFactory struct{ mock.Mock }

func (m *MockLockerUoWFactory) Create() commands.LockerUoW {
	args := m.Called()
	return args.Get(0).(commands.LockerUoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(kind string, message string) {
	m.Called(kind, message)
}

func adminIdentity(t *testing.T) account.Identity {
	t.Helper()
	identity, err := account.NewIdentity(kernel.NewUUID(), "admin", account.Admin, true)
	require.NoError(t, err)
	return identity
}

func courierIdentity(t *testing.T) account.Identity {
	t.Helper()
	identity, err := account.NewIdentity(kernel.NewUUID(), "courier", account.Courier, true)
	require.NoError(t, err)
	return identity
}

func customerIdentity(t *testing.T) account.Identity {
	t.Helper()
	identity, err := account.NewIdentity(kernel.NewUUID(), "customer", account.Customer, true)
	require.NoError(t, err)
	return identity
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("Springfield", "Main St")
	require.NoError(t, err)
	return address
}

// lockerWithAvailableCell builds a locker holding one Available cell.
func lockerWithAvailableCell(t *testing.T) (*locker.Locker, *locker.Cell) {
	t.Helper()
	lockerEntity, err := locker.NewLocker(kernel.NewUUID(), "LOC-1", testAddress(t))
	require.NoError(t, err)
	cell, err := lockerEntity.AddCell("A1", locker.Small)
	require.NoError(t, err)
	return lockerEntity, cell
}

// lockerWithCell builds a locker holding one cell restored in the given state.
func lockerWithCell(
	t *testing.T,
	cellID kernel.UUID,
	status locker.CellStatus,
	isLocked bool,
	reservedAt *time.Time,
) (*locker.Locker, *locker.Cell) {
	t.Helper()
	cell, err := locker.RestoreCell(cellID, "A1", locker.Small, status, true, isLocked, reservedAt)
	require.NoError(t, err)
	lockerEntity, err := locker.RestoreLocker(kernel.NewUUID(), "LOC-1", testAddress(t), []*locker.Cell{cell})
	require.NoError(t, err)
	return lockerEntity, cell
}
