package errors

import (
	"errors"
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
			err:      errors.New("storage not initialized"),
			expected: "Error: storage not initialized",
		},
		{
			name:     "invalid input",
			err:      Invalid("minutes must be positive, got %d", 0),
			expected: "Error: invalid input: minutes must be positive, got 0",
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
	got := Formatf("habit %q not found", "read")
	want := `Error: habit "read" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(Invalid("bad date %s", "2024-13-01")) {
		t.Error("IsInvalid() = false for Invalid error")
	}
	wrapped := fmt.Errorf("study add: %w", Invalid("bad minutes"))
	if !IsInvalid(wrapped) {
		t.Error("IsInvalid() = false for wrapped Invalid error")
	}
	if IsInvalid(errors.New("disk full")) {
		t.Error("IsInvalid() = true for unrelated error")
	}
	if IsInvalid(nil) {
		t.Error("IsInvalid(nil) = true")
	}
}
