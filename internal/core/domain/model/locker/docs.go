// Package locker contains the Locker aggregate and its owned Cell entities.
//
// A Locker is a physical unit of individually lockable compartments (Cells)
// installed at one address. Cells are provisioned once and never destroyed;
// their occupancy follows an explicit state machine (Available, Reserved,
// Occupied, OutOfService) that the Cell Allocator and the Lifecycle
// Synchronizer drive in step with parcel lifecycle transitions.
package locker
