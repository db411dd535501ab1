package domain

import "errors"

// retryableError marks a downstream failure as safe to retry.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as retryable. The mark survives further
// fmt.Errorf("%w") wrapping. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// ShouldRetry reports whether err carries a retryable mark anywhere in
// its chain.
func ShouldRetry(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
