package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"lockerhub/cmd"
	lockerhttp "lockerhub/internal/adapters/in/http"
	"lockerhub/internal/adapters/out/postgres/accountrepo"
	"lockerhub/internal/adapters/out/postgres/lockerrepo"
	"lockerhub/internal/adapters/out/postgres/parcelrepo"
	"lockerhub/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultReservationTTL = 15 * time.Minute
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	migrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateReleaseExpiredReservationsCommandHandler(),
		configs.ReservationTTL,
		slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		ReservationTTL: durationEnv("RESERVATION_TTL", defaultReservationTTL),
		RateLimitRPS:   floatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst: intEnv("RATE_LIMIT_BURST", defaultRateLimitBurst),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func floatEnv(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&lockerrepo.LockerDTO{},
		&lockerrepo.CellDTO{},
		&parcelrepo.ParcelDTO{},
		&accountrepo.UserDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := lockerhttp.NewServer(
		app.CreateProvisionLockerCommandHandler(),
		app.CreateRegisterParcelCommandHandler(),
		app.CreatePlaceParcelCommandHandler(),
		app.CreateApplyTransitionCommandHandler(),
		app.CreateGetAvailableCellsQueryHandler(),
		app.CreateGetUncollectedParcelsQueryHandler(),
		app.NotificationQueue(),
		app.DiagnosticBuffer(),
	)

	limiter := lockerhttp.NewRateLimiter(configs.RateLimitRPS, configs.RateLimitBurst)
	server.RegisterRoutes(e, app.CreateTokenAuth(), limiter)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
