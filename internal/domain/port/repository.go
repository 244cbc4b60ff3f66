package port

import (
	"context"

	"github.com/crediflow/credit-approval/internal/domain/event"
	"github.com/crediflow/credit-approval/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CustomerRepository persists and retrieves customers.
type CustomerRepository interface {
	// Create inserts a new customer and returns it with the assigned ID.
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)
	// Upsert writes a customer under its externally supplied ID (bulk ingestion).
	Upsert(ctx context.Context, customer model.Customer) error
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	PhoneNumberExists(ctx context.Context, phoneNumber string) (bool, error)
	// SyncIDSequence realigns the identity sequence after ingesting rows with
	// explicit IDs, so later registrations do not collide.
	SyncIDSequence(ctx context.Context) error
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	// Upsert writes a loan under its externally supplied ID (bulk ingestion).
	Upsert(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id int64) (model.Loan, error)
	// FindByCustomerID returns the customer's loans ordered by start date,
	// most recent first.
	FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error)
	SyncIDSequence(ctx context.Context) error
}

// LoanWriter persists a new loan inside an open unit of work.
type LoanWriter interface {
	Create(ctx context.Context, loan model.Loan) (model.Loan, error)
}

// UnitOfWork serializes a read-decide-write cycle against a single customer.
// WithCustomerLock opens a transaction, locks the customer row, and hands the
// callback a consistent snapshot of the customer and their loans together
// with a transaction-scoped loan writer. Two simultaneous loan creations for
// one customer cannot both pass the affordability check on a stale snapshot.
type UnitOfWork interface {
	WithCustomerLock(
		ctx context.Context,
		customerID int64,
		fn func(ctx context.Context, customer model.Customer, loans []model.Loan, writer LoanWriter) error,
	) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
