// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for scripting.
//
// Every command that supports --json writes the same envelope so callers
// can check "success" without knowing the command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// JSONResponse is the standardized response format for CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
// Human-readable messages should go to stderr when JSON mode is enabled.
func (r *JSONResponse) Print() error {
	return r.PrintTo(os.Stdout)
}

// PrintTo outputs the JSON response to w.
func (r *JSONResponse) PrintTo(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// FormatData is one row of the formats command.
type FormatData struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	UserPrefix      string `json:"user_prefix"`
	AssistantPrefix string `json:"assistant_prefix"`
	Default         bool   `json:"default"`
}

// FormatsData represents the data returned by the formats command.
type FormatsData struct {
	Locale  string       `json:"locale"`
	Formats []FormatData `json:"formats"`
}

// ConfigPathData represents the data returned by config path.
type ConfigPathData struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}
