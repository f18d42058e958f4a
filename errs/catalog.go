package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrRateLimited   = errors.New("too many requests")
	ErrInvalidFilter = errors.New("invalid filter")
)

// NewRateLimitedError is returned when the admission window is exhausted.
// RetryAfter tells the caller how long until the window resets.
func NewRateLimitedError(retryAfter time.Duration) *ApiErr {
	seconds := int(retryAfter.Seconds()) + 1
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimited,
		Details:    fmt.Sprintf("Retry after %d seconds", seconds),
		RetryAfter: seconds,
	}
}

func NewInvalidFilterError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidFilter,
		Details:    reason,
	}
}

func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func IsInvalidFilter(err error) bool {
	return errors.Is(err, ErrInvalidFilter)
}
