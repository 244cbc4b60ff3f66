package rest

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crediflow/credit-approval/internal/application/dto"
	"github.com/crediflow/credit-approval/internal/application/usecase"
)

// CreditHandler exposes the credit approval operations over HTTP.
type CreditHandler struct {
	register  *usecase.RegisterCustomerUseCase
	check     *usecase.CheckEligibilityUseCase
	create    *usecase.CreateLoanUseCase
	getLoan   *usecase.GetLoanUseCase
	listLoans *usecase.ListCustomerLoansUseCase
	logger    *slog.Logger
}

// NewCreditHandler creates a handler with all use-case dependencies.
func NewCreditHandler(
	register *usecase.RegisterCustomerUseCase,
	check *usecase.CheckEligibilityUseCase,
	create *usecase.CreateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	listLoans *usecase.ListCustomerLoansUseCase,
	logger *slog.Logger,
) *CreditHandler {
	return &CreditHandler{
		register:  register,
		check:     check,
		create:    create,
		getLoan:   getLoan,
		listLoans: listLoans,
		logger:    logger,
	}
}

// Register handles POST /api/v1/register.
func (h *CreditHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRegisterRequest(req); err != nil {
		h.logger.WarnContext(r.Context(), "registration failed validation", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "customer registration failed", "error", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// CheckEligibility handles POST /api/v1/check-eligibility.
func (h *CreditHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateLoanRequest(req); err != nil {
		h.logger.WarnContext(r.Context(), "eligibility check failed validation", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.check.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "eligibility check failed", "customer_id", req.CustomerID, "error", err)
		writeDomainError(w, err)
		return
	}

	recordDecision(r.Context(), "check", resp.Approval)
	writeJSON(w, http.StatusOK, resp)
}

// CreateLoan handles POST /api/v1/create-loan.
func (h *CreditHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateLoanRequest(req); err != nil {
		h.logger.WarnContext(r.Context(), "loan creation failed validation", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.create.Execute(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "loan creation failed", "customer_id", req.CustomerID, "error", err)
		writeDomainError(w, err)
		return
	}

	recordDecision(r.Context(), "create", resp.LoanApproved)

	// A rejection is a normal outcome, reported with 200; only an actually
	// created loan warrants 201.
	status := http.StatusOK
	if resp.LoanApproved {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// GetLoan handles GET /api/v1/loans/{loan_id}.
func (h *CreditHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := strconv.ParseInt(r.PathValue("loan_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "loan_id must be an integer")
		return
	}

	resp, err := h.getLoan.Execute(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListCustomerLoans handles GET /api/v1/customers/{customer_id}/loans.
func (h *CreditHandler) ListCustomerLoans(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.PathValue("customer_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "customer_id must be an integer")
		return
	}

	items, err := h.listLoans.Execute(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
