package main

import (
	"context"
	"os"

	"harborsync/internal/database"
	"harborsync/internal/harbor"
	"harborsync/internal/logger"
	"harborsync/internal/repository"
	"harborsync/internal/service"

	"github.com/joho/godotenv"
)

// One full ingestion run: fetch one posted document from the vendor
// API, replace its snapshot in the database, then print the
// verification report.
func main() {
	log := logger.New()

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("No configs/.env file found or error loading it")
	}

	token := os.Getenv("HARBOR_TOKEN")
	if token == "" {
		log.Fatal().Msg("HARBOR_TOKEN environment variable is required")
	}
	documentID := os.Getenv("HARBOR_DOCUMENT_ID")
	if documentID == "" {
		log.Fatal().Msg("HARBOR_DOCUMENT_ID environment variable is required")
	}

	accountID := os.Getenv("HARBOR_ACCOUNT_ID")
	if accountID == "" {
		accountID = "700030"
	}
	baseURL := os.Getenv("HARBOR_BASE_URL")
	if baseURL == "" {
		baseURL = harbor.DefaultBaseURL
	}

	db, err := database.NewConnection(buildDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}

	if os.Getenv("RESET_SCHEMA") == "true" {
		log.Info().Msg("Resetting snapshot schema")
		if err := database.ResetSchema(db); err != nil {
			log.Fatal().Err(err).Msg("Schema reset failed")
		}
	}

	client := harbor.NewClient(accountID, token,
		harbor.WithBaseURL(baseURL),
		harbor.WithLogger(log),
	)

	invoiceRepo := repository.NewInvoiceRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	lineItemRepo := repository.NewLineItemRepository(db)
	runRepo := repository.NewIngestRunRepository(db)
	txManager := repository.NewTransactionManager(db)

	ingestService := service.NewIngestService(client, invoiceRepo, categoryRepo, lineItemRepo, runRepo, txManager, log)
	reportService := service.NewReportService(invoiceRepo, categoryRepo, lineItemRepo, runRepo)

	ctx := context.Background()

	log.Info().Str("document_id", documentID).Msg("Starting ingestion")
	if err := ingestService.Run(ctx, documentID); err != nil {
		log.Fatal().Err(err).Str("document_id", documentID).Msg("Ingestion failed")
	}
	log.Info().Str("document_id", documentID).Msg("Successfully processed invoice")

	// The report is diagnostic only; a failure here must not mask the
	// committed ingestion.
	report, err := reportService.BuildReport(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Verification report failed")
		return
	}
	service.RenderReport(os.Stdout, report)
}

func buildDSN() string {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	return "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
}
