// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, display and exit codes for CLI commands.
//
// Handlers always return errors and let main decide how to display them.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PoChenKuo/chat-gpt-reader/internal/browser"
	"github.com/PoChenKuo/chat-gpt-reader/internal/config"
	"github.com/PoChenKuo/chat-gpt-reader/internal/printing"
	"github.com/PoChenKuo/chat-gpt-reader/internal/transcript"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a file or format was not found
	ExitNotFoundError = 4
	// ExitNothingToPrint indicates the transcript had no visible turns
	ExitNothingToPrint = 5
	// ExitSurfaceError indicates the browser could not be opened
	ExitSurfaceError = 6
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 7
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "print", "config")
	Action  string // Action being performed (e.g., "read", "save")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource  string   // Type of resource (e.g., "file", "format")
	ID        string   // Identifier that was not found
	Available []string // Valid identifiers, when there is a fixed set
}

func (e *NotFoundError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("%s not found: %s (available: %s)", e.Resource, e.ID, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewNotFoundErrorIn creates a not found error that lists the valid choices.
func NewNotFoundErrorIn(resource, id string, available []string) error {
	return &NotFoundError{
		Resource:  resource,
		ID:        id,
		Available: available,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError writes an error to stderr in a consistent format.
// In JSON mode, outputs a structured JSON error on stdout instead.
func DisplayError(err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(os.Stdout, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON outputs an error as JSON.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":   err.Error(),
		"success": false,
	}

	var (
		cmdErr      *CommandError
		validateErr *ValidationError
		notFoundErr *NotFoundError
	)
	switch {
	case errors.As(err, &validateErr):
		output["error_type"] = "validation_error"
		output["field"] = validateErr.Field
		output["value"] = validateErr.Value
		output["reason"] = validateErr.Reason
		if validateErr.Example != "" {
			output["example"] = validateErr.Example
		}
	case errors.As(err, &notFoundErr):
		output["error_type"] = "not_found_error"
		output["resource"] = notFoundErr.Resource
		output["id"] = notFoundErr.ID
	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
		output["reason"] = cmdErr.Reason
		if cmdErr.Err != nil {
			output["underlying_error"] = cmdErr.Err.Error()
		}
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output)
}

// HandleErrorAndExit displays an error and exits with an appropriate exit code.
func HandleErrorAndExit(err error, jsonMode bool) {
	if err == nil {
		return
	}
	DisplayError(err, jsonMode)
	os.Exit(GetExitCode(err))
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) || errors.Is(err, os.ErrNotExist) {
		return ExitNotFoundError
	}

	if errors.Is(err, transcript.ErrInvalidFile) || errors.Is(err, transcript.ErrTooLarge) {
		return ExitUsageError
	}

	var configErrs config.ValidateErrors
	if errors.As(err, &configErrs) {
		return ExitConfigError
	}

	if errors.Is(err, printing.ErrEmptyTranscript) {
		return ExitNothingToPrint
	}

	if errors.Is(err, browser.ErrNotConnected) {
		return ExitTimeoutError
	}
	if errors.Is(err, printing.ErrSurfaceUnavailable) {
		return ExitSurfaceError
	}

	return ExitGeneralError
}
