package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/port"
)

// IngestDataUseCase bulk-upserts customer and loan rows keyed by externally
// supplied IDs, then realigns the identity sequences so that registrations
// performed after an ingest do not collide with ingested IDs.
type IngestDataUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	logger    *slog.Logger
}

// NewIngestDataUseCase wires dependencies.
func NewIngestDataUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	logger *slog.Logger,
) *IngestDataUseCase {
	return &IngestDataUseCase{
		customers: customers,
		loans:     loans,
		logger:    logger,
	}
}

// IngestCustomers upserts customer records.
func (uc *IngestDataUseCase) IngestCustomers(ctx context.Context, customers []model.Customer) error {
	for _, c := range customers {
		if c.ID <= 0 {
			return fmt.Errorf("customer %q: ingested rows must carry an explicit ID", c.FullName())
		}
		if err := uc.customers.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert customer %d: %w", c.ID, err)
		}
	}

	if err := uc.customers.SyncIDSequence(ctx); err != nil {
		return fmt.Errorf("sync customer sequence: %w", err)
	}

	uc.logger.InfoContext(ctx, "customer ingestion complete", "count", len(customers))
	return nil
}

// IngestLoans upserts loan records. Customers must already be ingested.
func (uc *IngestDataUseCase) IngestLoans(ctx context.Context, loans []model.Loan) error {
	for _, l := range loans {
		if l.ID <= 0 {
			return fmt.Errorf("loan for customer %d: ingested rows must carry an explicit ID", l.CustomerID)
		}
		if err := uc.loans.Upsert(ctx, l); err != nil {
			return fmt.Errorf("upsert loan %d: %w", l.ID, err)
		}
	}

	if err := uc.loans.SyncIDSequence(ctx); err != nil {
		return fmt.Errorf("sync loan sequence: %w", err)
	}

	uc.logger.InfoContext(ctx, "loan ingestion complete", "count", len(loans))
	return nil
}
