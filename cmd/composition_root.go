package cmd

import (
	"lockerhub/internal/adapters/in/http"
	"lockerhub/internal/adapters/out/postgres"
	"lockerhub/internal/adapters/out/postgres/accountrepo"
	"lockerhub/internal/core/application/usecases/commands"
	"lockerhub/internal/core/application/usecases/queries"
	"lockerhub/internal/notify"
	"lockerhub/internal/pkg/diaglog"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	notifications *notify.Queue
	diagnostics   *diaglog.Buffer
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifications: notify.NewQueue(),
		diagnostics:   diaglog.NewBuffer(),
	}
}

func (c *CompositionRoot) NotificationQueue() *notify.Queue {
	return c.notifications
}

func (c *CompositionRoot) DiagnosticBuffer() *diaglog.Buffer {
	return c.diagnostics
}

func (c *CompositionRoot) CreateProvisionLockerCommandHandler() commands.ProvisionLockerCommandHandler {
	var f commands.LockerUoWFactory = FuncLockerUoWFactory(func() commands.LockerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProvisionLockerCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterParcelCommandHandler(f)
}

func (c *CompositionRoot) CreatePlaceParcelCommandHandler() commands.PlaceParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyTransitionCommandHandler(f, c.diagnostics, c.notifications)
}

func (c *CompositionRoot) CreateReleaseExpiredReservationsCommandHandler() commands.ReleaseExpiredReservationsCommandHandler {
	var f commands.LockerUoWFactory = FuncLockerUoWFactory(func() commands.LockerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseExpiredReservationsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailableCellsQueryHandler() queries.GetAvailableCellsQueryHandler {
	return queries.NewGetAvailableCellsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncollectedParcelsQueryHandler() queries.GetUncollectedParcelsQueryHandler {
	return queries.NewGetUncollectedParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTokenAuth() *http.TokenAuth {
	return http.NewTokenAuth(accountrepo.NewGormAccountRepository(c.gormDB))
}

type FuncLockerUoWFactory func() commands.LockerUoW

func (f FuncLockerUoWFactory) Create() commands.LockerUoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
