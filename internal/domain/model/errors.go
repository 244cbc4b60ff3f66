package model

import "errors"

// Sentinel errors surfaced by repositories and mapped to transport-level
// failures by the presentation layer.
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrPhoneNumberExists = errors.New("phone number already registered")
)
