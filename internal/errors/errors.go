package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/stridex/stridex/internal/logger"
)

var (
	// ErrValidation is the sentinel wrapped by every ValidationError
	ErrValidation = stderrors.New("validation failed")

	// ErrInsufficientData is returned when the progress ledger is too short to fit a model
	ErrInsufficientData = stderrors.New("not enough progress data to generate predictions")

	// ErrNotFound is returned for unknown account or habit ids
	ErrNotFound = stderrors.New("not found")
)

// ValidationError reports a rejected input. No state is mutated when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validation builds a ValidationError for the given field
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the kind and id of the missing item
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Is, As and New re-export the standard library helpers so callers need a single import
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func New(text string) error { return stderrors.New(text) }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
