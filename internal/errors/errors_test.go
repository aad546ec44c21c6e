package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "validation error",
			err:      Validation("habit name", "cannot be empty"),
			expected: "Error: invalid habit name: cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("failed to load %s", "account")
	if result != "Error: failed to load account" {
		t.Errorf("Formatf() = %q", result)
	}
}

func TestValidationMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("add habit: %w", Validation("habit name", "cannot be empty"))

	if !Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation) to hold for %v", err)
	}

	var verr *ValidationError
	if !As(err, &verr) {
		t.Fatalf("expected errors.As to find a *ValidationError in %v", err)
	}
	if verr.Field != "habit name" {
		t.Errorf("Field = %q, want %q", verr.Field, "habit name")
	}
	if Is(err, ErrNotFound) {
		t.Error("validation error must not match ErrNotFound")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("habit", "u1_9")
	if !Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != `habit "u1_9": not found` {
		t.Errorf("unexpected message %q", err.Error())
	}
}
