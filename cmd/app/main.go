package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	db, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(root.CreateResetDailyEarningsCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:       os.Getenv("HTTP_PORT"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      os.Getenv("DB_SSLMODE"),
		PaymentBaseURL: os.Getenv("PAYMENT_BASE_URL"),
		PaymentAPIKey:  os.Getenv("PAYMENT_API_KEY"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateTransitionStatusCommandHandler(),
		root.CreateAssignDeliveryCommandHandler(),
		root.CreateUnassignDeliveryCommandHandler(),
		root.CreateIssueDeliveryOTPCommandHandler(),
		root.CreateVerifyDeliveryOTPCommandHandler(),
		root.CreateInitiateReturnCommandHandler(),
		root.CreateReviewReturnCommandHandler(),
		root.CreateSchedulePickupCommandHandler(),
		root.CreateAdvancePickupCommandHandler(),
		root.CreateRecordQualityCheckCommandHandler(),
		root.CreateSettleReturnCommandHandler(),
		root.CreateCancelReturnCommandHandler(),
		root.CreateTrackOrderQueryHandler(),
		root.CreateGetAgentEarningsQueryHandler(),
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
