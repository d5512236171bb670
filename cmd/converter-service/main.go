package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	converterserver "github.com/AlexZav1327/converter/internal/converter-server"
	converterservice "github.com/AlexZav1327/converter/internal/converter-service"
	"github.com/AlexZav1327/converter/internal/dashboard"
	"github.com/AlexZav1327/converter/internal/postgres"
	"github.com/AlexZav1327/converter/internal/rates"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort     = 8080
	defaultFixerURL = "http://data.fixer.io/api/latest"
	fixerAPIKeyEnv  = "FIXER_API_KEY"
	fixerAPIURLEnv  = "FIXER_API_URL"
	dsnEnv          = "DSN"
	portEnv         = "PORT"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logger := logrus.StandardLogger()

	err := godotenv.Load()
	if err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	apiKey := os.Getenv(fixerAPIKeyEnv)
	if apiKey == "" {
		logger.Panicf("%s is not set", fixerAPIKeyEnv)
	}

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		logger.Panicf("%s is not set", dsnEnv)
	}

	apiURL := os.Getenv(fixerAPIURLEnv)
	if apiURL == "" {
		apiURL = defaultFixerURL
	}

	port := defaultPort
	if os.Getenv(portEnv) != "" {
		port, err = strconv.Atoi(os.Getenv(portEnv))
		if err != nil {
			logger.Panicf("%s is not a valid port: %s", portEnv, err)
		}
	}

	pg, err := postgres.ConnectDB(ctx, logger, dsn)
	if err != nil {
		logger.Panicf("postgres.ConnectDB: %s", err)
	}

	err = pg.Migrate(migrate.Up)
	if err != nil {
		logger.Panicf("Migrate: %s", err)
	}

	ratesClient := rates.New(apiURL, apiKey, logger)
	converterService := converterservice.New(ratesClient, pg, logger)
	board := dashboard.New(pg, logger)
	server := converterserver.New("", port, converterService, board, logger)

	err = server.Run(ctx)
	if err != nil {
		logger.Panicf("server.Run: %s", err)
	}
}
