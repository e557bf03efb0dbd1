package db

import (
	"errors"
	"fmt"
)

// ConnectionError means the database could not be reached or opened.
// Import reports these separately so the user checks the profile first.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "connect: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError means an introspection query failed on an open connection
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("read schema: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func WrapConnectionError(err error) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Err: err}
}

func WrapQueryError(err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Err: err}
}

// IsConnectionError reports whether err came from connecting rather than reading
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
