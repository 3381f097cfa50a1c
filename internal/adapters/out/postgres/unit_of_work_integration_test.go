package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "lockerhub/internal/adapters/out/postgres"
	"lockerhub/internal/adapters/out/postgres/lockerrepo"
	"lockerhub/internal/adapters/out/postgres/parcelrepo"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/core/domain/model/parcel"
	"lockerhub/internal/core/ports"
	"lockerhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work and
// repositories against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&lockerrepo.LockerDTO{}, &lockerrepo.CellDTO{}, &parcelrepo.ParcelDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE lockers, cells, parcels").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// newLocker builds and persists a locker with the given cell codes, all
// Available and active.
func (suite *UnitOfWorkIntegrationTestSuite) newLocker(deviceID string, codes ...string) *locker.Locker {
	address, err := kernel.NewAddress("Springfield", "Main St")
	suite.Require().NoError(err)

	lockerEntity, err := locker.NewLocker(kernel.NewUUID(), deviceID, address)
	suite.Require().NoError(err)

	for _, code := range codes {
		_, err = lockerEntity.AddCell(code, locker.Medium)
		suite.Require().NoError(err)
	}

	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LockerRepository().Add(ctx, lockerEntity))
	suite.Require().NoError(uow.Commit(ctx))

	return lockerEntity
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.LockerRepository())
	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow2.LockerRepository())
	suite.NotNil(uow2.ParcelRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Operations without active transaction fail
	err = uow.Commit(ctx)
	suite.Error(err)
	err = uow.Rollback(ctx)
	suite.Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	parcelEntity, err := parcel.NewParcel(kernel.NewUUID(), "Jane Doe")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, parcelEntity))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err = verify.ParcelRepository().Get(ctx, parcelEntity.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_AddAndGet() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "B1", "A1")

	loaded, err := suite.factory.Create().LockerRepository().Get(ctx, lockerEntity.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(lockerEntity))
	suite.Equal("LOC-1", loaded.DeviceID())
	suite.Require().Len(loaded.Cells(), 2)
	// Cells come back ordered by code regardless of insert order
	suite.Equal("A1", loaded.Cells()[0].Code())
	suite.Equal("B1", loaded.Cells()[1].Code())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_GetByCellID() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cellID := lockerEntity.Cells()[0].ID()

	loaded, err := suite.factory.Create().LockerRepository().GetByCellID(ctx, cellID)
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(lockerEntity))

	_, err = suite.factory.Create().LockerRepository().GetByCellID(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_FindByFilter() {
	ctx := context.Background()
	suite.newLocker("LOC-1", "A1")
	suite.newLocker("LOC-2", "A1")

	repo := suite.factory.Create().LockerRepository()

	byDevice, err := repo.FindByFilter(ctx, ports.LockerFilter{DeviceID: "LOC-1"})
	suite.Require().NoError(err)
	suite.Len(byDevice, 1)

	// City matches by prefix
	byCity, err := repo.FindByFilter(ctx, ports.LockerFilter{City: "Spring"})
	suite.Require().NoError(err)
	suite.Len(byCity, 2)

	byStreet, err := repo.FindByFilter(ctx, ports.LockerFilter{Street: "Elm"})
	suite.Require().NoError(err)
	suite.Empty(byStreet)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_ReserveCell_Guarded() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cellID := lockerEntity.Cells()[0].ID()

	repo := suite.factory.Create().LockerRepository()

	err := repo.ReserveCell(ctx, cellID, time.Now())
	suite.Require().NoError(err)

	// Second reservation of the same cell loses the guard
	err = repo.ReserveCell(ctx, cellID, time.Now())
	suite.Require().Error(err)
	suite.ErrorIs(err, ports.ErrConcurrentReservation)
}

// TestLockerRepository_ReserveCell_SingleWinner races many transactions for
// one cell and verifies exactly one wins.
func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_ReserveCell_SingleWinner() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cellID := lockerEntity.Cells()[0].ID()

	const contenders = 8
	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				results <- err
				return
			}
			err := uow.LockerRepository().ReserveCell(ctx, cellID, time.Now())
			if err != nil {
				_ = uow.Rollback(ctx)
				results <- err
				return
			}
			results <- uow.Commit(ctx)
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for err := range results {
		if err == nil {
			winners++
		} else {
			suite.ErrorIs(err, ports.ErrConcurrentReservation)
		}
	}
	suite.Equal(1, winners, "exactly one contender should win the cell")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_UpdateCell() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cell := lockerEntity.Cells()[0]

	suite.Require().NoError(cell.Reserve(time.Now()))
	suite.Require().NoError(cell.Occupy())

	repo := suite.factory.Create().LockerRepository()
	suite.Require().NoError(repo.UpdateCell(ctx, cell))

	loaded, err := repo.Get(ctx, lockerEntity.ID())
	suite.Require().NoError(err)
	suite.Equal(locker.Occupied, loaded.Cells()[0].Status())
	suite.True(loaded.Cells()[0].IsLocked())
	suite.Nil(loaded.Cells()[0].ReservedAt())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockerRepository_FindWithExpiredReservations() {
	ctx := context.Background()
	staleLocker := suite.newLocker("LOC-1", "A1")
	suite.newLocker("LOC-2", "A1")

	repo := suite.factory.Create().LockerRepository()
	staleAt := time.Now().Add(-time.Hour)
	suite.Require().NoError(repo.ReserveCell(ctx, staleLocker.Cells()[0].ID(), staleAt))

	expired, err := repo.FindWithExpiredReservations(ctx, time.Now().Add(-15*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(expired[0].IsEqual(staleLocker))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelRepository_AddGetUpdate() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cellID := lockerEntity.Cells()[0].ID()

	parcelEntity, err := parcel.NewParcel(kernel.NewUUID(), "Jane Doe")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, parcelEntity))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(parcelEntity.Place(cellID))
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, parcelEntity))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().ParcelRepository().Get(ctx, parcelEntity.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.InLocker, loaded.Status())
	suite.Require().NotNil(loaded.CellID())
	suite.True(loaded.CellID().IsEqual(cellID))

	// Collect clears the cell binding; the NULL must persist
	suite.Require().NoError(loaded.Collect())
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	collected, err := suite.factory.Create().ParcelRepository().Get(ctx, parcelEntity.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.Delivered, collected.Status())
	suite.Nil(collected.CellID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestParcelRepository_GetByCellID() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cellID := lockerEntity.Cells()[0].ID()

	parcelEntity, err := parcel.NewParcel(kernel.NewUUID(), "Jane Doe")
	suite.Require().NoError(err)
	suite.Require().NoError(parcelEntity.Place(cellID))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, parcelEntity))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().ParcelRepository().GetByCellID(ctx, cellID)
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(parcelEntity))

	// Delivered parcels no longer bind the cell
	suite.Require().NoError(loaded.Collect())
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	_, err = suite.factory.Create().ParcelRepository().GetByCellID(ctx, cellID)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_AtomicCellAndParcelUpdate verifies the placement write set
// commits as a unit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AtomicCellAndParcelUpdate() {
	ctx := context.Background()
	lockerEntity := suite.newLocker("LOC-1", "A1")
	cell := lockerEntity.Cells()[0]

	parcelEntity, err := parcel.NewParcel(kernel.NewUUID(), "Jane Doe")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, parcelEntity))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	reservedAt := time.Now()
	suite.Require().NoError(uow.LockerRepository().ReserveCell(ctx, cell.ID(), reservedAt))
	suite.Require().NoError(cell.Reserve(reservedAt))
	suite.Require().NoError(cell.Occupy())
	suite.Require().NoError(parcelEntity.Place(cell.ID()))
	suite.Require().NoError(uow.LockerRepository().UpdateCell(ctx, cell))
	suite.Require().NoError(uow.ParcelRepository().Update(ctx, parcelEntity))

	// Not visible before commit
	outside, err := suite.factory.Create().LockerRepository().Get(ctx, lockerEntity.ID())
	suite.Require().NoError(err)
	suite.Equal(locker.Available, outside.Cells()[0].Status())

	suite.Require().NoError(uow.Commit(ctx))

	after, err := suite.factory.Create().LockerRepository().Get(ctx, lockerEntity.ID())
	suite.Require().NoError(err)
	suite.Equal(locker.Occupied, after.Cells()[0].Status())

	afterParcel, err := suite.factory.Create().ParcelRepository().Get(ctx, parcelEntity.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.InLocker, afterParcel.Status())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
