// Package parcel contains the Parcel aggregate: a shipment unit moving
// through a closed lifecycle (Created, InLocker, Delivered). Each lifecycle
// transition implies a cell-side effect that must be committed atomically
// with the parcel update; the application layer's Lifecycle Synchronizer
// owns that pairing.
package parcel
