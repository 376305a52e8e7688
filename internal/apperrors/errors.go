// Package apperrors defines the error taxonomy shared by the survey flow:
// input validation, analysis service failures and storage failures.
package apperrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error code surfaced to API clients.
type Code string

const (
	CodeValidationFailed Code = "VALIDATION_FAILED"

	CodeAnalysisUnavailable Code = "ANALYSIS_UNAVAILABLE"
	CodeAnalysisTimeout     Code = "ANALYSIS_TIMEOUT"
	CodeAnalysisBadStatus   Code = "ANALYSIS_BAD_STATUS"
	CodeAnalysisMalformed   Code = "ANALYSIS_MALFORMED"
	CodeAnalysisInvalidCode Code = "ANALYSIS_INVALID_CODE"

	CodeStorageWrite     Code = "STORAGE_WRITE_FAILED"
	CodeStorageRead      Code = "STORAGE_READ_FAILED"
	CodeStorageDuplicate Code = "STORAGE_DUPLICATE"
)

// ValidationError rejects user input before it reaches the session state.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// Code implements Coded.
func (e *ValidationError) Code() Code { return CodeValidationFailed }

// NewValidation creates a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AnalysisError reports that no usable analysis could be obtained.
type AnalysisError struct {
	Kind      Code   `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Err       error  `json:"-"`
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis failed [%s]: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("analysis failed [%s]: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Code implements Coded.
func (e *AnalysisError) Code() Code { return e.Kind }

// NewUnavailable is returned when the service cannot be reached.
func NewUnavailable(err error) *AnalysisError {
	return &AnalysisError{Kind: CodeAnalysisUnavailable, Message: "analysis service unreachable", Retryable: true, Err: err}
}

// NewTimeout is returned when the call exceeds its deadline.
func NewTimeout(err error) *AnalysisError {
	return &AnalysisError{Kind: CodeAnalysisTimeout, Message: "analysis service timed out", Retryable: true, Err: err}
}

// NewBadStatus is returned for a non-2xx reply.
func NewBadStatus(status int) *AnalysisError {
	return &AnalysisError{
		Kind:      CodeAnalysisBadStatus,
		Message:   fmt.Sprintf("analysis service returned status %d", status),
		Retryable: status >= 500 || status == 429,
	}
}

// NewMalformed is returned when the reply does not match the expected shape.
func NewMalformed(details string, err error) *AnalysisError {
	return &AnalysisError{Kind: CodeAnalysisMalformed, Message: details, Err: err}
}

// NewInvalidCode is returned when the career code fails format checks.
func NewInvalidCode(code string) *AnalysisError {
	return &AnalysisError{Kind: CodeAnalysisInvalidCode, Message: fmt.Sprintf("invalid career code %q", code)}
}

// StorageError reports that the record medium refused a read or write.
type StorageError struct {
	Op   string `json:"op"` // append, list, clear
	Kind Code   `json:"code"`
	Err  error  `json:"-"`
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Code implements Coded.
func (e *StorageError) Code() Code { return e.Kind }

// NewStorageWrite wraps a failed append or clear.
func NewStorageWrite(op string, err error) *StorageError {
	return &StorageError{Op: op, Kind: CodeStorageWrite, Err: err}
}

// NewStorageRead wraps a failed list.
func NewStorageRead(op string, err error) *StorageError {
	return &StorageError{Op: op, Kind: CodeStorageRead, Err: err}
}

// NewStorageDuplicate is returned when an append would overwrite an existing id.
func NewStorageDuplicate(id string, err error) *StorageError {
	return &StorageError{Op: "append", Kind: CodeStorageDuplicate, Err: fmt.Errorf("record %s already exists: %w", id, err)}
}

// Coded is implemented by every error in this package.
type Coded interface {
	error
	Code() Code
}

// CodeOf returns the code carried by err, or "" when err is not one of ours.
func CodeOf(err error) Code {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

var publicMessages = map[Code]string{
	CodeAnalysisUnavailable: "the analysis service is unavailable",
	CodeAnalysisTimeout:     "the analysis service timed out",
	CodeAnalysisBadStatus:   "the analysis service rejected the request",
	CodeAnalysisMalformed:   "the analysis service returned an unusable result",
	CodeAnalysisInvalidCode: "the analysis service returned an invalid career code",
	CodeStorageWrite:        "the record could not be saved",
	CodeStorageRead:         "records could not be read",
	CodeStorageDuplicate:    "the record already exists",
}

// PublicMessage is the text shown to API clients for err. Analysis and storage
// errors map to a fixed message per code; their causes stay in the logs.
func PublicMessage(err error) string {
	if msg, ok := publicMessages[CodeOf(err)]; ok {
		return msg
	}
	return err.Error()
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAnalysis reports whether err is an AnalysisError.
func IsAnalysis(err error) bool {
	var a *AnalysisError
	return errors.As(err, &a)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
