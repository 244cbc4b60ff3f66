package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/crediflow/credit-approval/internal/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is an internal failure; the generic message keeps storage
// details off the wire.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found")
	case errors.Is(err, model.ErrLoanNotFound):
		writeError(w, http.StatusNotFound, "Loan not found")
	case errors.Is(err, model.ErrPhoneNumberExists):
		writeError(w, http.StatusConflict, "Phone number already registered")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// readJSON decodes the request body into v, limiting its size and rejecting
// unknown fields.
func readJSON(r *http.Request, v any) error {
	defer io.Copy(io.Discard, r.Body) //nolint:errcheck

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
