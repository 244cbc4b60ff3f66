package rest

import (
	"net/http"
)

// RegisterRoutes attaches all API routes to the given mux.
func (h *CreditHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/register", h.Register)
	mux.HandleFunc("POST /api/v1/check-eligibility", h.CheckEligibility)
	mux.HandleFunc("POST /api/v1/create-loan", h.CreateLoan)
	mux.HandleFunc("GET /api/v1/loans/{loan_id}", h.GetLoan)
	mux.HandleFunc("GET /api/v1/customers/{customer_id}/loans", h.ListCustomerLoans)
}
