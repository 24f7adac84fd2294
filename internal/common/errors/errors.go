// Package errors provides standardized error handling for corpus generation
// and its job-worker integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnknownTaxonomyKey       ErrorCode = "UNKNOWN_TAXONOMY_KEY"
	ErrCodeUnknownScenario          ErrorCode = "UNKNOWN_SCENARIO"
	ErrCodeInvalidGenerationOptions ErrorCode = "INVALID_GENERATION_OPTIONS"
	ErrCodeTaxonomyLoadFailed       ErrorCode = "TAXONOMY_LOAD_FAILED"

	ErrCodeRecordNotFound         ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeDuplicateRecordID      ErrorCode = "DUPLICATE_RECORD_ID"
	ErrCodeInvalidStatus          ErrorCode = "INVALID_STATUS"
	ErrCodeRecordValidationFailed ErrorCode = "RECORD_VALIDATION_FAILED"

	ErrCodePublishFailed          ErrorCode = "PUBLISH_FAILED"
	ErrCodeRedisConnectionFailed  ErrorCode = "REDIS_CONNECTION_FAILED"
	ErrCodeSearchIndexFailed      ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeDatabaseInsertFailed   ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeWorkflowEngineFailed   ErrorCode = "WORKFLOW_ENGINE_FAILED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the sentinel the error was built from.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Wrap builds a StandardError around cause, keeping errors.Is working.
func Wrap(code ErrorCode, message string, cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewUnknownTaxonomyKeyError reports a category or subcategory absent from the catalog.
func NewUnknownTaxonomyKeyError(cause error) *StandardError {
	e := Wrap(ErrCodeUnknownTaxonomyKey, "Unknown taxonomy key", cause)
	e.Retryable = false
	return e
}

// NewUnknownScenarioError reports a scenario outside the fixed set.
func NewUnknownScenarioError(cause error) *StandardError {
	e := Wrap(ErrCodeUnknownScenario, "Unknown generation scenario", cause)
	e.Retryable = false
	return e
}

// NewInvalidGenerationOptionsError reports a malformed population request.
func NewInvalidGenerationOptionsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidGenerationOptions,
		Message:   "Invalid generation options",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError reports a lookup miss in the corpus.
func NewRecordNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found in corpus",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordValidationFailedError reports generated records that broke their schema.
func NewRecordValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordValidationFailed,
		Message:   "Generated record failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPublishFailedError creates a retryable downstream publish error.
func NewPublishFailedError(sink string, err error) *StandardError {
	e := Wrap(ErrCodePublishFailed, fmt.Sprintf("Publishing to %s failed", sink), err)
	e.Retryable = true
	return e
}

// ==========================
// 4. Mapping Helpers
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUnknownTaxonomyKey:       "UNKNOWN_TAXONOMY_KEY",
	ErrCodeUnknownScenario:          "UNKNOWN_SCENARIO",
	ErrCodeInvalidGenerationOptions: "INVALID_GENERATION_OPTIONS",
	ErrCodeTaxonomyLoadFailed:       "TAXONOMY_LOAD_FAILED",
	ErrCodeRecordNotFound:           "RECORD_NOT_FOUND",
	ErrCodeDuplicateRecordID:        "DUPLICATE_RECORD_ID",
	ErrCodeInvalidStatus:            "INVALID_STATUS",
	ErrCodeRecordValidationFailed:   "RECORD_VALIDATION_FAILED",
	ErrCodePublishFailed:            "PUBLISH_FAILED",
	ErrCodeRedisConnectionFailed:    "REDIS_CONNECTION_FAILED",
	ErrCodeSearchIndexFailed:        "SEARCH_INDEX_FAILED",
	ErrCodeDatabaseInsertFailed:     "DATABASE_INSERT_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeWorkflowEngineFailed:     "WORKFLOW_ENGINE_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePublishFailed,
		ErrCodeRedisConnectionFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeWorkflowEngineFailed:
		return 3

	case ErrCodeNotificationSendFailed:
		return 1

	default:
		return 0 // generation errors are deterministic, retrying cannot help
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// AsStandardError finds a StandardError in err's chain or wraps err as an
// internal error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "TAXONOMY") || strings.Contains(codeStr, "SCENARIO"):
		return "TAXONOMY"
	case strings.Contains(codeStr, "GENERATION") || strings.Contains(codeStr, "VALIDATION"):
		return "GENERATION"
	case strings.Contains(codeStr, "RECORD") || strings.Contains(codeStr, "STATUS"):
		return "CORPUS"
	case strings.Contains(codeStr, "REDIS") || strings.Contains(codeStr, "SEARCH") ||
		strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "PUBLISH"):
		return "PUBLISH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	default:
		return "OTHER"
	}
}
