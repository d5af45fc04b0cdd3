package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAttribute is raised when an undeclared attribute is accessed.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrNoTransport is returned by lifecycle operations on a kind without
	// a transport.
	ErrNoTransport = errors.New("no transport configured")
)

// InvalidAttributeSerializer is returned when an attribute declares a
// coercion target with no known strategy.
type InvalidAttributeSerializer struct {
	Type TypeTag
}

func (e *InvalidAttributeSerializer) Error() string {
	return fmt.Sprintf("%s is not a valid attribute serializer", e.Type)
}

// ResponseInvalid is returned when a payload fails to decode or decodes to
// nothing. Err is nil in the latter case.
type ResponseInvalid struct {
	Kind string
	Err  error
}

func (e *ResponseInvalid) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid response for %s", e.Kind)
	}
	return fmt.Sprintf("invalid response for %s: %v", e.Kind, e.Err)
}

func (e *ResponseInvalid) Unwrap() error {
	return e.Err
}

// ServiceError is returned when the service answers with a status outside
// the 2xx range.
type ServiceError struct {
	Kind       string
	StatusCode int
	Body       []byte
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error (status %d): %s", e.Kind, e.StatusCode, string(e.Body))
}
