package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/port"
	pkgpostgres "github.com/crediflow/credit-approval/pkg/postgres"
)

// UnitOfWork implements port.UnitOfWork on a pgx pool. The customer row lock
// (SELECT ... FOR UPDATE) serializes concurrent loan creations for the same
// customer so the affordability check always sees a consistent loan set.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a unit of work bound to the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// WithCustomerLock runs fn within a transaction holding a row lock on the
// customer. The snapshot passed to fn and any loan written through the writer
// commit or roll back together.
func (u *UnitOfWork) WithCustomerLock(
	ctx context.Context,
	customerID int64,
	fn func(ctx context.Context, customer model.Customer, loans []model.Loan, writer port.LoanWriter) error,
) error {
	return pkgpostgres.WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`
		customer, err := scanCustomerRow(tx.QueryRow(ctx, lockQuery, customerID))
		if err != nil {
			return fmt.Errorf("lock customer %d: %w", customerID, err)
		}

		loans, err := (&LoanRepo{db: tx}).FindByCustomerID(ctx, customerID)
		if err != nil {
			return fmt.Errorf("load loans for customer %d: %w", customerID, err)
		}

		return fn(ctx, customer, loans, &LoanRepo{db: tx})
	})
}
