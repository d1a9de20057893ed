package util

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common error types for hvui
var (
	// ErrInvalidConfig indicates a configuration value that cannot be used,
	// either locally or as reported by Rancher or a Harvester cluster
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingConfig indicates a required configuration value was not provided
	ErrMissingConfig = errors.New("missing configuration")

	// ErrClusterNotFound indicates a Harvester cluster was not found
	ErrClusterNotFound = errors.New("cluster not found")

	// ErrConnectionFailed indicates a connection failure
	ErrConnectionFailed = errors.New("connection failed")

	// ErrLoadFailed indicates a plugin bundle could not be fetched or stored
	ErrLoadFailed = errors.New("plugin load failed")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCancelled indicates an operation was cancelled
	ErrCancelled = errors.New("operation cancelled")

	// ErrAlreadyExists indicates a resource already exists
	ErrAlreadyExists = errors.New("already exists")
)

// ClusterError wraps an error with cluster context
type ClusterError struct {
	ClusterName string
	Err         error
}

// Error implements the error interface
func (e *ClusterError) Error() string {
	return fmt.Sprintf("cluster %q: %v", e.ClusterName, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *ClusterError) Unwrap() error {
	return e.Err
}

// WrapClusterError wraps an error with cluster context
func WrapClusterError(clusterName string, err error) error {
	if err == nil {
		return nil
	}
	return &ClusterError{
		ClusterName: clusterName,
		Err:         err,
	}
}

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		if i < 10 {
			sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
		} else {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more errors", len(m.Errors)-10))
			break
		}
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// ErrorOrNil returns nil if no errors were collected, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errs ...error) error {
	m := &MultiError{Errors: make([]error, 0, len(errs))}
	for _, err := range errs {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
	return m.ErrorOrNil()
}

// ContextError maps a context error to ErrTimeout or ErrCancelled,
// keeping the original in the chain. Other errors are returned unchanged.
func ContextError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	default:
		return err
	}
}

// IsConfigError reports whether err is an invalid or missing configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrMissingConfig)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClusterNotFound)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrTimeout):
		return "Operation timed out. Please try again or increase the timeout value with --timeout flag."
	case errors.Is(err, ErrCancelled):
		return "Operation was cancelled."
	case IsNotFound(err):
		return "Harvester cluster not found. Check the name with 'hvui cluster list'."
	case errors.Is(err, ErrConnectionFailed):
		return "Failed to connect to Rancher. Please check your kubeconfig context and network connectivity."
	case errors.Is(err, ErrAlreadyExists):
		return "Cluster already exists. Use a different name."
	default:
		// Configuration and load errors carry the specific reason
		return err.Error()
	}
}
