package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Info-FreshDrop/freshdrop-sub001/cmd"
	httpin "github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/in/http"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/payment"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres/arearepo"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres/promorepo"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cast"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	migrateDB(gormDB)

	dispatcher, err := rabbitmq.NewDispatcher(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer dispatcher.Close()

	gateway := payment.NewHTTPGateway(configs.PaymentBaseURL, configs.PaymentAPIKey)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		gateway,
		dispatcher,
		logger,
	)

	jobManager := app.CreateJobManager()
	if configs.JobsEnabled {
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("Error starting jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(&app, configs.HTTPPort)
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
		AmqpURL:        goDotEnvVariable("AMQP_URL"),
		PaymentBaseURL: goDotEnvVariable("PAYMENT_BASE_URL"),
		PaymentAPIKey:  goDotEnvVariable("PAYMENT_API_KEY"),
		JobsEnabled:    cast.ToBool(goDotEnvVariable("JOBS_ENABLED")),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&arearepo.ServiceAreaDTO{},
		&promorepo.PromotionDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateClaimOrderCommandHandler(),
		app.CreateAdvanceOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateFailOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetUnclaimedOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
