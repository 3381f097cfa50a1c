// Package jobs provides scheduled background tasks for the locker system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. ReservationReleaseJob - Runs every 30 seconds to return cells stuck in
// a reserved state back to the allocatable pool
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(releaseHandler, 15*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "*/30 * * * * *", running every 30
// seconds. A reservation is released once it is older than the configured
// TTL, so the effective hold time is TTL plus at most one sweep interval.
package jobs
