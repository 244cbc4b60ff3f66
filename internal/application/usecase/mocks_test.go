package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/crediflow/credit-approval/internal/domain/event"
	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/port"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockCustomerRepository struct {
	createFn            func(ctx context.Context, customer model.Customer) (model.Customer, error)
	upsertFn            func(ctx context.Context, customer model.Customer) error
	findByIDFn          func(ctx context.Context, id int64) (model.Customer, error)
	phoneNumberExistsFn func(ctx context.Context, phoneNumber string) (bool, error)
	syncIDSequenceFn    func(ctx context.Context) error
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	return m.createFn(ctx, customer)
}

func (m *mockCustomerRepository) Upsert(ctx context.Context, customer model.Customer) error {
	return m.upsertFn(ctx, customer)
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockCustomerRepository) PhoneNumberExists(ctx context.Context, phoneNumber string) (bool, error) {
	return m.phoneNumberExistsFn(ctx, phoneNumber)
}

func (m *mockCustomerRepository) SyncIDSequence(ctx context.Context) error {
	if m.syncIDSequenceFn == nil {
		return nil
	}
	return m.syncIDSequenceFn(ctx)
}

type mockLoanRepository struct {
	upsertFn           func(ctx context.Context, loan model.Loan) error
	findByIDFn         func(ctx context.Context, id int64) (model.Loan, error)
	findByCustomerIDFn func(ctx context.Context, customerID int64) ([]model.Loan, error)
	syncIDSequenceFn   func(ctx context.Context) error
}

func (m *mockLoanRepository) Upsert(ctx context.Context, loan model.Loan) error {
	return m.upsertFn(ctx, loan)
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockLoanRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	return m.findByCustomerIDFn(ctx, customerID)
}

func (m *mockLoanRepository) SyncIDSequence(ctx context.Context) error {
	if m.syncIDSequenceFn == nil {
		return nil
	}
	return m.syncIDSequenceFn(ctx)
}

type mockLoanWriter struct {
	createFn func(ctx context.Context, loan model.Loan) (model.Loan, error)
	created  []model.Loan
}

func (m *mockLoanWriter) Create(ctx context.Context, loan model.Loan) (model.Loan, error) {
	loan, err := m.createFn(ctx, loan)
	if err == nil {
		m.created = append(m.created, loan)
	}
	return loan, err
}

// mockUnitOfWork hands the callback a fixed snapshot, standing in for the
// locked transactional read.
type mockUnitOfWork struct {
	customer model.Customer
	loans    []model.Loan
	writer   *mockLoanWriter
	err      error
}

func (m *mockUnitOfWork) WithCustomerLock(
	ctx context.Context,
	customerID int64,
	fn func(ctx context.Context, customer model.Customer, loans []model.Loan, writer port.LoanWriter) error,
) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx, m.customer, m.loans, m.writer)
}

type mockEventPublisher struct {
	publishFn func(ctx context.Context, events ...event.DomainEvent) error
	published []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFn != nil {
		if err := m.publishFn(ctx, events...); err != nil {
			return err
		}
	}
	m.published = append(m.published, events...)
	return nil
}
