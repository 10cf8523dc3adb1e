package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FileUnreadable indicates a source file could not be read
	FileUnreadable ErrorCode = "FILE_UNREADABLE"
	// AnalysisFailed indicates a calculator failed on one file
	AnalysisFailed ErrorCode = "ANALYSIS_FAILED"
	// NoValidDirectories indicates none of the requested directories exist
	NoValidDirectories ErrorCode = "NO_VALID_DIRECTORIES"
	// NoFilesFound indicates discovery returned no source files
	NoFilesFound ErrorCode = "NO_FILES_FOUND"
	// NoMetrics indicates files were processed but produced no vocabulary
	NoMetrics ErrorCode = "NO_METRICS"
	// ConfigInvalid indicates a configuration value failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// StorageFailed indicates the history database could not be used
	StorageFailed ErrorCode = "STORAGE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditConfig suggests changing a configuration value
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Description string        `json:"description,omitempty"`
}

// SqmError is an error with a stable code and optional suggestions
type SqmError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a SqmError with the default suggestions for code
func New(code ErrorCode, message string, cause error) *SqmError {
	return &SqmError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
		cause:          cause,
	}
}

// Error implements the error interface
func (e *SqmError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SqmError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *SqmError) WithDetails(details interface{}) *SqmError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first SqmError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var se *SqmError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	NoValidDirectories: {
		{
			Type:        RunCommand,
			Command:     "sqm analyze ./src",
			Description: "Pass one or more existing source directories",
		},
	},
	NoFilesFound: {
		{
			Type:        EditConfig,
			Description: "Check discovery.extensions and discovery.excludeDirs in .sqm/config.json",
		},
	},
	StorageFailed: {
		{
			Type:        RunCommand,
			Command:     "sqm analyze --no-cache",
			Description: "Run without the file cache",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
