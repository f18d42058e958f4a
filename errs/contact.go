package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrSendFailed       = errors.New("email send failed")
)

// NewValidationError carries a single field-level validation failure. The
// field name and reason go back to the caller verbatim for display.
func NewValidationError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidationFailed,
		Field:      field,
		Details:    reason,
	}
}

// NewSendFailedError wraps a delivery failure from the email provider into a
// single human-readable message. The send is at-most-once; there is no retry.
func NewSendFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrSendFailed,
		Details:    fmt.Sprintf("The message could not be delivered: %v", cause),
		Cause:      cause,
	}
}

func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

func IsSendFailed(err error) bool {
	return errors.Is(err, ErrSendFailed)
}
