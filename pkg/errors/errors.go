package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Connection errors (1xxx)
	ErrCodeConnectionFailed     ErrorCode = "MDLN1001"
	ErrCodeConnectionTimeout    ErrorCode = "MDLN1002"
	ErrCodeAuthenticationFailed ErrorCode = "MDLN1003"
	ErrCodeNetworkUnavailable   ErrorCode = "MDLN1004"

	// Configuration errors (2xxx)
	ErrCodeConfigNotFound   ErrorCode = "MDLN2001"
	ErrCodeConfigInvalid    ErrorCode = "MDLN2002"
	ErrCodeConfigMissing    ErrorCode = "MDLN2003"
	ErrCodeConfigPermission ErrorCode = "MDLN2004"

	// Ingestion errors (3xxx)
	ErrCodeSourceNotFound    ErrorCode = "MDLN3001"
	ErrCodeSourceUnreadable  ErrorCode = "MDLN3002"
	ErrCodeSourceEmpty       ErrorCode = "MDLN3003"
	ErrCodeSourceMalformed   ErrorCode = "MDLN3004"

	// SQL execution / load errors (4xxx)
	ErrCodeSQLSyntax         ErrorCode = "MDLN4001"
	ErrCodeSQLPermission     ErrorCode = "MDLN4002"
	ErrCodeSQLTimeout        ErrorCode = "MDLN4003"
	ErrCodeSQLTransaction    ErrorCode = "MDLN4004"
	ErrCodeSQLObjectNotFound ErrorCode = "MDLN4005"
	ErrCodeSQLExecution      ErrorCode = "MDLN4006"
	ErrCodeLoadFailed        ErrorCode = "MDLN4007"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "MDLN6001"
	ErrCodeInvalidInput     ErrorCode = "MDLN6002"
	ErrCodeRequiredField    ErrorCode = "MDLN6003"

	// Security errors (7xxx)
	ErrCodeEncryptionFailed   ErrorCode = "MDLN7001"
	ErrCodeCredentialNotFound ErrorCode = "MDLN7002"

	// System errors (9xxx)
	ErrCodeInternal           ErrorCode = "MDLN9001"
	ErrCodeTimeout            ErrorCode = "MDLN9002"
	ErrCodeResourceExhausted  ErrorCode = "MDLN9003"
	ErrCodeServiceUnavailable ErrorCode = "MDLN9004"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit its context
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// ConnectionError creates a connection-related error
func ConnectionError(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeConnectionFailed, message).
		WithSeverity(SeverityError).
		WithSuggestions(
			"Check your network connection",
			"Verify Snowflake endpoint is accessible",
			"Check firewall settings",
		)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'medallion setup' to reconfigure",
			"Refer to the configuration documentation",
		)
}

// SourceError creates a source-file ingestion error
func SourceError(message string, path string, cause error) *AppError {
	return Wrap(cause, ErrCodeSourceUnreadable, message).
		WithContext("path", path).
		WithSuggestions(
			"Verify the source directory and file names",
			"Check file permissions",
			"Confirm the extract was fully written before the run",
		)
}

// SQLError creates an SQL execution error
func SQLError(message string, query string, cause error) *AppError {
	err := Wrap(cause, ErrCodeSQLExecution, message).
		WithContext("query", truncateString(query, 200))

	if cause != nil {
		errStr := cause.Error()
		if strings.Contains(errStr, "permission") || strings.Contains(errStr, "access denied") {
			err.Code = ErrCodeSQLPermission
			_ = err.WithSuggestions(
				"Check user permissions in Snowflake",
				"Verify the role has required privileges",
				"Contact your Snowflake administrator",
			)
		} else if strings.Contains(errStr, "timeout") {
			err.Code = ErrCodeSQLTimeout
			_ = err.WithSuggestions(
				"Increase the query timeout setting",
				"Check Snowflake warehouse size",
			)
		} else if strings.Contains(errStr, "does not exist") || strings.Contains(errStr, "not found") {
			err.Code = ErrCodeSQLObjectNotFound
			_ = err.WithSuggestions(
				"Verify the object exists in the target database/schema",
				"Check for typos in object names",
			)
		}
	}

	return err
}

// ValidationError creates a validation error
func ValidationError(field string, value interface{}, reason string) *AppError {
	return New(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity(SeverityWarning).
		AsRecoverable()
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
