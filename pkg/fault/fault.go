// Package fault defines the error taxonomy shared by every layer.
package fault

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a record or row does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrUniqueViolation is returned on unique-constraint conflicts (e.g. duplicate email).
	ErrUniqueViolation = errors.New("unique violation")
	// ErrDuplicateLabel is returned when a schema already contains a field with the label.
	ErrDuplicateLabel = errors.New("label already exists")
	// ErrSubtypeExhausted is returned when the requested subtype has been consumed
	// from the catalog pool for this schema.
	ErrSubtypeExhausted = errors.New("subtype not available")
	// ErrDuplicateDatePicker is returned when a schema already holds its one date picker.
	ErrDuplicateDatePicker = errors.New("date picker already added")
	// ErrCorruptRecord is returned when a stored blob cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)

type ErrorType int

const (
	ErrClient ErrorType = iota
	ErrInternal
)

// Fault wraps an error with a client/internal classification and a message.
type Fault struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Fault) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.typeString(), e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.typeString(), e.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (e *Fault) Unwrap() error {
	return e.Err
}

func (e *Fault) typeString() string {
	switch e.Type {
	case ErrClient:
		return "ClientError"
	case ErrInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// NewClientError creates a new client error.
func NewClientError(msg string, err error) error {
	return &Fault{Type: ErrClient, Message: msg, Err: err}
}

// NewInternalError creates a new internal error.
func NewInternalError(msg string, err error) error {
	return &Fault{Type: ErrInternal, Message: msg, Err: err}
}

// IsClientError checks if an error is a client error.
func IsClientError(err error) bool {
	var ce *Fault
	if errors.As(err, &ce) {
		return ce.Type == ErrClient
	}
	return false
}

// ValidationError blocks a submission. It carries one message per offending
// field, keyed by the field label. It is always recoverable by the user.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	labels := make([]string, 0, len(e.Fields))
	for l := range e.Fields {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, l+": "+e.Fields[l])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
