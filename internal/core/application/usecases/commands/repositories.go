// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// authorization, transaction management, and persistence.
package commands

import (
	"context"

	"lockerhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LockerRepoFactory provides access to the locker repository within a
	// transaction.
	LockerRepoFactory interface {
		LockerRepository() ports.LockerRepository
	}

	// ParcelRepoFactory provides access to the parcel repository within a
	// transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// LockerUoW manages transactions for locker-only operations.
	LockerUoW interface {
		TxManager
		LockerRepoFactory
	}

	// LockerUoWFactory creates new locker unit of work instances.
	LockerUoWFactory interface {
		Create() LockerUoW
	}

	// ParcelUoW manages transactions for parcel-only operations.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// UoW manages transactions spanning the (cell, parcel) pair. Used by
	// the allocator and the lifecycle synchronizer, whose updates to a
	// parcel and its bound cell must commit together or not at all.
	UoW interface {
		TxManager
		LockerRepoFactory
		ParcelRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Notifier publishes transient user-facing messages after successful
// state changes. Implemented by the in-memory notification queue.
type Notifier interface {
	Notify(kind string, message string)
}
