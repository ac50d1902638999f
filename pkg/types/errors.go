package types

import "errors"

// Field validation errors. Each message names the expected input format so
// it can be shown to the user as is.
var (
	ErrInvalidName     = errors.New("name cannot be empty")
	ErrInvalidPhone    = errors.New("phone number must be in the format +38XXXXXXXXXX")
	ErrInvalidBirthday = errors.New("invalid date format, use DD.MM.YYYY")
)

// Lookup errors.
var (
	ErrContactNotFound = errors.New("contact not found")
	ErrPhoneNotFound   = errors.New("phone number not found")
	ErrBirthdayNotSet  = errors.New("birthday not set")
)

// ErrInvalidSnapshot is returned when a persisted snapshot holds a value the
// field constructors reject.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrWindowInvalid  = errors.New("birthday window must not be negative")
)

// ValidationError reports a raw field value that failed construction.
// It wraps one of ErrInvalidName, ErrInvalidPhone or ErrInvalidBirthday.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field, value string, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

