package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/domain/event"
	"github.com/crediflow/credit-approval/internal/domain/model"
	"github.com/crediflow/credit-approval/internal/domain/port"
)

// RegisterCustomerUseCase registers a new customer with a derived approved limit.
type RegisterCustomerUseCase struct {
	customers port.CustomerRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(
	customers port.CustomerRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customers: customers,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates, persists, and announces a new customer.
func (uc *RegisterCustomerUseCase) Execute(
	ctx context.Context,
	req dto.RegisterCustomerRequest,
) (dto.RegisterCustomerResponse, error) {
	now := time.Now().UTC()

	// 1. Build the customer; the approved limit is fixed here, at registration.
	customer, err := model.NewCustomer(req.FirstName, req.LastName, req.Age, req.PhoneNumber, req.MonthlyIncome, now)
	if err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("create customer: %w", err)
	}

	// 2. Phone numbers are unique across customers.
	exists, err := uc.customers.PhoneNumberExists(ctx, req.PhoneNumber)
	if err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("check phone number: %w", err)
	}
	if exists {
		return dto.RegisterCustomerResponse{}, model.ErrPhoneNumberExists
	}

	// 3. Persist.
	customer, err = uc.customers.Create(ctx, customer)
	if err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	// 4. Publish.
	evt := event.NewCustomerRegistered(customer.ID, customer.PhoneNumber, customer.MonthlySalary, customer.ApprovedLimit)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish customer registered event",
			"customer_id", customer.ID, "error", err)
	}

	uc.logger.InfoContext(ctx, "customer registered",
		"customer_id", customer.ID,
		"approved_limit", customer.ApprovedLimit,
	)

	return dto.RegisterCustomerResponse{
		CustomerID:    customer.ID,
		Name:          customer.FullName(),
		Age:           customer.Age,
		MonthlyIncome: customer.MonthlySalary,
		ApprovedLimit: customer.ApprovedLimit,
		PhoneNumber:   customer.PhoneNumber,
	}, nil
}
