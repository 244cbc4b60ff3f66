package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crediflow/credit-approval/internal/domain/model"
	pkgpostgres "github.com/crediflow/credit-approval/pkg/postgres"
)

// LoanRepo implements port.LoanRepository. With a transaction as the Querier
// it also serves as the unit-of-work's port.LoanWriter.
type LoanRepo struct {
	db pkgpostgres.Querier
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{db: pool}
}

const loanColumns = `
	id, customer_id, loan_amount, interest_rate, tenure,
	monthly_installment, emis_paid_on_time, start_date, end_date,
	created_at, updated_at
`

// Create inserts a new loan and returns it with the database-assigned ID.
func (r *LoanRepo) Create(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query := `
		INSERT INTO loans (
			customer_id, loan_amount, interest_rate, tenure,
			monthly_installment, emis_paid_on_time, start_date, end_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		loan.CustomerID, loan.LoanAmount, loan.InterestRate, loan.Tenure,
		loan.MonthlyInstallment, loan.EMIsPaidOnTime, loan.StartDate, loan.EndDate,
		loan.CreatedAt, loan.UpdatedAt,
	).Scan(&loan.ID)
	if err != nil {
		return model.Loan{}, fmt.Errorf("insert loan: %w", err)
	}
	return loan, nil
}

// Upsert writes a loan under its externally supplied ID.
func (r *LoanRepo) Upsert(ctx context.Context, loan model.Loan) error {
	query := `
		INSERT INTO loans (
			id, customer_id, loan_amount, interest_rate, tenure,
			monthly_installment, emis_paid_on_time, start_date, end_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			customer_id         = EXCLUDED.customer_id,
			loan_amount         = EXCLUDED.loan_amount,
			interest_rate       = EXCLUDED.interest_rate,
			tenure              = EXCLUDED.tenure,
			monthly_installment = EXCLUDED.monthly_installment,
			emis_paid_on_time   = EXCLUDED.emis_paid_on_time,
			start_date          = EXCLUDED.start_date,
			end_date            = EXCLUDED.end_date,
			updated_at          = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		loan.ID, loan.CustomerID, loan.LoanAmount, loan.InterestRate, loan.Tenure,
		loan.MonthlyInstallment, loan.EMIsPaidOnTime, loan.StartDate, loan.EndDate,
		loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert loan %d: %w", loan.ID, err)
	}
	return nil
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return scanLoanRow(r.db.QueryRow(ctx, query, id))
}

// FindByCustomerID retrieves the customer's loans, most recent first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY start_date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// SyncIDSequence realigns the loans identity sequence with the max ingested ID.
func (r *LoanRepo) SyncIDSequence(ctx context.Context) error {
	query := `
		SELECT setval(
			pg_get_serial_sequence('loans', 'id'),
			COALESCE(MAX(id), 1),
			MAX(id) IS NOT NULL
		) FROM loans
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("sync loans sequence: %w", err)
	}
	return nil
}

func scanLoanRow(row pgx.Row) (model.Loan, error) {
	var l model.Loan
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.LoanAmount, &l.InterestRate, &l.Tenure,
		&l.MonthlyInstallment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, model.ErrLoanNotFound
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}
	return l, nil
}
