package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/crediflow/credit-approval/internal/application/usecase"
	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/infrastructure/config"
	"github.com/crediflow/credit-approval/internal/infrastructure/ingest"
	pgRepo "github.com/crediflow/credit-approval/internal/infrastructure/persistence/postgres"
	"github.com/crediflow/credit-approval/pkg/observability"
	pkgpostgres "github.com/crediflow/credit-approval/pkg/postgres"
)

// ingest upserts customer and loan rows from spreadsheet CSV exports into the
// database, keyed by the IDs carried in the files. Run it before serving any
// decisions against that data.
func main() {
	customersPath := flag.String("customers", "data/customer_data.csv", "path to the customer data CSV")
	loansPath := flag.String("loans", "data/loan_data.csv", "path to the loan data CSV")
	flag.Parse()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   "info",
		Format:  "text",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pkgpostgres.RunMigrations(pgCfg.DSN()); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	uc := usecase.NewIngestDataUseCase(
		pgRepo.NewCustomerRepo(pool),
		pgRepo.NewLoanRepo(pool),
		logger,
	)

	now := time.Now().UTC()

	customers, err := readCustomers(*customersPath, now, logger)
	if err != nil {
		os.Exit(1)
	}
	if err := uc.IngestCustomers(ctx, customers); err != nil {
		logger.Error("customer ingestion failed", "error", err)
		os.Exit(1)
	}

	loans, err := readLoans(*loansPath, now, logger)
	if err != nil {
		os.Exit(1)
	}
	if err := uc.IngestLoans(ctx, loans); err != nil {
		logger.Error("loan ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion finished", "customers", len(customers), "loans", len(loans))
}

func readCustomers(path string, now time.Time, logger *slog.Logger) ([]model.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("cannot open customer data file", "path", path, "error", err)
		return nil, err
	}
	defer f.Close()

	customers, err := ingest.ReadCustomers(f, now)
	if err != nil {
		logger.Error("cannot parse customer data file", "path", path, "error", err)
		return nil, err
	}
	return customers, nil
}

func readLoans(path string, now time.Time, logger *slog.Logger) ([]model.Loan, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("cannot open loan data file", "path", path, "error", err)
		return nil, err
	}
	defer f.Close()

	loans, err := ingest.ReadLoans(f, now)
	if err != nil {
		logger.Error("cannot parse loan data file", "path", path, "error", err)
		return nil, err
	}
	return loans, nil
}
