package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// ReservationTTL is how long a cell may stay Reserved before the sweep
	// returns it to the allocatable pool.
	ReservationTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}
