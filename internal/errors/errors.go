package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/learnnova/internal/logger"
)

// ErrInvalidInput marks errors caused by bad command line or form input.
// These are reported to the user but not logged as failures.
var ErrInvalidInput = errors.New("invalid input")

// Invalid returns an error wrapping ErrInvalidInput with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalid reports whether err was produced by Invalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

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
	if err == nil {
		return
	}
	if !IsInvalid(err) {
		logger.Error("Command execution failed", "error", err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
