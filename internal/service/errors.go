package service

import "fmt"

// StatsServiceError is a custom error type for stats service errors.
type StatsServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for StatsServiceError.
func (e *StatsServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stats service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("stats service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StatsServiceError) Unwrap() error {
	return e.Err
}

// NewStatsServiceError creates a new StatsServiceError.
func NewStatsServiceError(operation, message string, err error) *StatsServiceError {
	return &StatsServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
