package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	fulfillmenthttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/auditlog"
	"fulfillment/internal/adapters/out/postgres/driverrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pickuprepo"
	"fulfillment/internal/adapters/out/rabbit"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp091 "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)
	metrics.Register()

	publisher, closeBroker := createPublisher(configs, logger)
	defer closeBroker()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateAutoAssignPickupCommandHandler(),
		configs.AssignIntervalSeconds,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting scheduled jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file found, using process environment")
	}

	config := cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		RabbitURL:             os.Getenv("RABBIT_URL"),
		RabbitExchange:        os.Getenv("RABBIT_EXCHANGE"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		AssignIntervalSeconds: intEnv("ASSIGN_INTERVAL_SECONDS", 30),
	}
	if config.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}
	return config
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&pickuprepo.PickupDTO{},
		&pickuprepo.TrackingEventDTO{},
		&driverrepo.DriverDTO{},
		&auditlog.ActivityLogDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

// createPublisher connects to RabbitMQ when RABBIT_URL is set and falls back
// to a logging no-op publisher otherwise, so the service can run without a
// broker in local development.
func createPublisher(configs cmd.Config, logger *slog.Logger) (ports.StatusPublisher, func()) {
	if configs.RabbitURL == "" {
		return rabbit.NewNoopStatusPublisher(logger), func() {}
	}

	conn, err := amqp091.Dial(configs.RabbitURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Error opening RabbitMQ channel: %v", err)
	}
	publisher, err := rabbit.NewAmqpStatusPublisher(channel, configs.RabbitExchange)
	if err != nil {
		log.Fatalf("Error declaring RabbitMQ exchange: %v", err)
	}
	return publisher, func() {
		_ = channel.Close()
		_ = conn.Close()
	}
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	server := fulfillmenthttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateCreatePickupCommandHandler(),
		app.CreateAssignPickupCommandHandler(),
		app.CreateUpdatePickupStatusCommandHandler(),
		app.CreateCancelPickupCommandHandler(),
		app.CreateGetPickupQueryHandler(),
		app.CreateGetTrackingHistoryQueryHandler(),
		app.CreateGetAvailableDriversQueryHandler(),
		app.CreateGetOrderQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e, configs.JWTSecret)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}
