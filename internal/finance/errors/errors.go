package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

var (
	ErrTransferFromRequired = NewValidationError("Select account to transfer from.")
	ErrTransferToRequired   = NewValidationError("Select account to transfer to.")
	ErrTransferSameAccount  = NewValidationError("Select a different account to transfer to.")
	ErrTransferAmount       = NewValidationError("Enter the amount to transfer.")
	ErrAccountRequired      = NewValidationError("Select an account.")
	ErrAmountBelowCent      = NewValidationError("Amount must be at least 0.01.")
	ErrInvalidAccountType   = NewValidationError("Invalid account type")
	ErrInvalidCreditCard    = NewValidationError("Invalid credit card type")
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrUnauthorizedAccess = errors.New("unauthorized: user does not own this resource")
)

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := ve.Messages()
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

func (ve *ValidationErrors) Messages() []string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return errorMessages
}

// OrNil returns nil when nothing was collected so callers can return it directly.
func (ve *ValidationErrors) OrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	return errors.As(err, &validationErrors)
}
