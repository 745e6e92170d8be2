package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity or storage key was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers are not told which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLineNotFound indicates a cart mutation referenced a line id that is
	// not in the cart. The cart is left unchanged.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrConfirmRemoval is returned when a decrement would drop a line's
	// quantity below 1. The line stays until the removal is confirmed.
	ErrConfirmRemoval = errors.New("removal requires confirmation")
	// ErrEmptyCart blocks checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError is a user-correctable, field-level error. Checks
// short-circuit: only the first failing rule is reported.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validation builds a ValidationError for the given field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
