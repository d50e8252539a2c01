package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := New(ErrCodeSourceNotFound, "Source file not found")

	assert.Equal(t, ErrCodeSourceNotFound, err.Code)
	assert.Equal(t, SeverityError, err.Severity)
	assert.False(t, err.Recoverable)
	assert.Contains(t, err.Error(), "MDLN3001")
	assert.Contains(t, err.Error(), "Source file not found")
}

func TestWrapPreservesCauseAndContext(t *testing.T) {
	inner := New(ErrCodeSQLExecution, "insert failed").WithContext("table", "crm_cust_info")
	outer := Wrap(inner, ErrCodeLoadFailed, "load aborted")

	assert.Equal(t, ErrCodeLoadFailed, outer.Code)
	assert.Equal(t, inner, outer.Unwrap())
	assert.Equal(t, "crm_cust_info", outer.Context["table"])
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestErrorIsMatchesOnCode(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad field")
	target := New(ErrCodeConfigInvalid, "different message")

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrCodeConfigNotFound, "other")))
}

func TestErrorIncludesSuggestions(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "account missing").
		WithSuggestions("Run 'medallion setup'")

	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "medallion setup")
}

func TestConfigError(t *testing.T) {
	err := ConfigError("account is required", "snowflake.account")

	assert.Equal(t, ErrCodeConfigInvalid, err.Code)
	assert.Equal(t, "snowflake.account", err.Context["field"])
	assert.NotEmpty(t, err.Suggestions)
}

func TestSQLErrorClassifiesCause(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  ErrorCode
	}{
		{"permission", fmt.Errorf("permission denied for schema SILVER"), ErrCodeSQLPermission},
		{"timeout", fmt.Errorf("statement timeout exceeded"), ErrCodeSQLTimeout},
		{"missing object", fmt.Errorf("table 'X' does not exist"), ErrCodeSQLObjectNotFound},
		{"generic", fmt.Errorf("boom"), ErrCodeSQLExecution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SQLError("exec failed", "SELECT 1", tt.cause)
			assert.Equal(t, tt.want, err.Code)
		})
	}
}

func TestSQLErrorTruncatesQuery(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "SELECT * FROM t; "
	}
	err := SQLError("exec failed", long, fmt.Errorf("boom"))

	query, ok := err.Context["query"].(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(query), 203)
}

func TestValidationErrorIsRecoverable(t *testing.T) {
	err := ValidationError("entity", "orders", "unknown entity")

	assert.Equal(t, ErrCodeValidationFailed, err.Code)
	assert.Equal(t, SeverityWarning, err.Severity)
	assert.True(t, IsRecoverable(err))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeSourceNotFound, GetErrorCode(New(ErrCodeSourceNotFound, "x")))
	assert.Equal(t, ErrCodeInternal, GetErrorCode(fmt.Errorf("plain error")))

	wrapped := fmt.Errorf("outer: %w", New(ErrCodeSQLTimeout, "slow"))
	assert.Equal(t, ErrCodeSQLTimeout, GetErrorCode(wrapped))
}
