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

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	db pkgpostgres.Querier
}

// NewCustomerRepo creates a new PostgreSQL-backed customer repository.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: pool}
}

const customerColumns = `
	id, first_name, last_name, age, phone_number,
	monthly_salary, approved_limit, created_at, updated_at
`

// Create inserts a new customer and returns it with the database-assigned ID.
func (r *CustomerRepo) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	query := `
		INSERT INTO customers (
			first_name, last_name, age, phone_number,
			monthly_salary, approved_limit, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		customer.FirstName, customer.LastName, customer.Age, customer.PhoneNumber,
		customer.MonthlySalary, customer.ApprovedLimit, customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		return model.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return customer, nil
}

// Upsert writes a customer under its externally supplied ID.
func (r *CustomerRepo) Upsert(ctx context.Context, customer model.Customer) error {
	query := `
		INSERT INTO customers (
			id, first_name, last_name, age, phone_number,
			monthly_salary, approved_limit, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			first_name     = EXCLUDED.first_name,
			last_name      = EXCLUDED.last_name,
			age            = EXCLUDED.age,
			phone_number   = EXCLUDED.phone_number,
			monthly_salary = EXCLUDED.monthly_salary,
			approved_limit = EXCLUDED.approved_limit,
			updated_at     = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		customer.ID, customer.FirstName, customer.LastName, customer.Age, customer.PhoneNumber,
		customer.MonthlySalary, customer.ApprovedLimit, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert customer %d: %w", customer.ID, err)
	}
	return nil
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomerRow(r.db.QueryRow(ctx, query, id))
}

// PhoneNumberExists reports whether any customer already holds the number.
func (r *CustomerRepo) PhoneNumberExists(ctx context.Context, phoneNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE phone_number = $1)`, phoneNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check phone number: %w", err)
	}
	return exists, nil
}

// SyncIDSequence realigns the customers identity sequence with the max
// ingested ID.
func (r *CustomerRepo) SyncIDSequence(ctx context.Context) error {
	query := `
		SELECT setval(
			pg_get_serial_sequence('customers', 'id'),
			COALESCE(MAX(id), 1),
			MAX(id) IS NOT NULL
		) FROM customers
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("sync customers sequence: %w", err)
	}
	return nil
}

func scanCustomerRow(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Age, &c.PhoneNumber,
		&c.MonthlySalary, &c.ApprovedLimit, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, model.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}
