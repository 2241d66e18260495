package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "Failed to parse spreadsheet",
				Cause:   nil,
			},
			wantMessage: "[PARSING] Failed to parse spreadsheet",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "Failed to write report",
				Cause:   fmt.Errorf("permission denied"),
			},
			wantMessage: "[STORAGE] Failed to write report: permission denied",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "",
				Cause:   nil,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appError.Error()
			assert.Equal(t, tt.wantMessage, got)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		wantErr  error
	}{
		{
			name: "unwrap with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "Parsing error",
				Cause:   fmt.Errorf("original error"),
			},
			wantErr: fmt.Errorf("original error"),
		},
		{
			name: "unwrap without cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "Storage error",
				Cause:   nil,
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appError.Unwrap()
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr.Error(), got.Error())
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	tests := []struct {
		name          string
		appError      *AppError
		key           string
		value         interface{}
		expectedValue interface{}
	}{
		{
			name: "add string context",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "Parsing error",
			},
			key:           "file_path",
			value:         "data/sales.xlsx",
			expectedValue: "data/sales.xlsx",
		},
		{
			name: "add integer context",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "Validation error",
			},
			key:           "row_index",
			value:         42,
			expectedValue: 42,
		},
		{
			name: "add context to error with existing context",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "Validation error",
				Context: map[string]interface{}{"field": "capture_cycle"},
			},
			key:           "value",
			value:         "13/2026",
			expectedValue: "13/2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.WithContext(tt.key, tt.value)

			// Should return the same instance
			assert.Same(t, tt.appError, result)

			// Should have the context value
			require.Contains(t, result.Context, tt.key)
			assert.Equal(t, tt.expectedValue, result.Context[tt.key])

			// Should initialize context if it was nil
			assert.NotNil(t, result.Context)
		})
	}
}

func TestNewAppError(t *testing.T) {
	tests := []struct {
		name      string
		errType   ErrorType
		message   string
		cause     error
		wantType  ErrorType
		wantMsg   string
		wantCause error
	}{
		{
			name:      "create parsing error",
			errType:   ErrTypeParsing,
			message:   "Failed to read sheet",
			cause:     fmt.Errorf("corrupt file"),
			wantType:  ErrTypeParsing,
			wantMsg:   "Failed to read sheet",
			wantCause: fmt.Errorf("corrupt file"),
		},
		{
			name:      "create error without cause",
			errType:   ErrTypeStorage,
			message:   "Write failed",
			cause:     nil,
			wantType:  ErrTypeStorage,
			wantMsg:   "Write failed",
			wantCause: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAppError(tt.errType, tt.message, tt.cause)

			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantMsg, got.Message)

			if tt.wantCause != nil {
				require.NotNil(t, got.Cause)
				assert.Equal(t, tt.wantCause.Error(), got.Cause.Error())
			} else {
				assert.Nil(t, got.Cause)
			}

			// Should initialize empty context
			assert.NotNil(t, got.Context)
			assert.Empty(t, got.Context)
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("root cause")

	t.Run("NewParsingError", func(t *testing.T) {
		got := NewParsingError("Failed to parse XLSX", cause)
		assert.Equal(t, ErrTypeParsing, got.Type)
		assert.Equal(t, cause, got.Cause)
	})

	t.Run("NewValidationError", func(t *testing.T) {
		got := NewValidationError("Row validation failed")
		assert.Equal(t, ErrTypeValidation, got.Type)
		assert.Nil(t, got.Cause)
	})

	t.Run("NewStorageError", func(t *testing.T) {
		got := NewStorageError("Failed to create report directory", cause)
		assert.Equal(t, ErrTypeStorage, got.Type)
		assert.Equal(t, cause, got.Cause)
	})

	t.Run("NewNotFoundError", func(t *testing.T) {
		got := NewNotFoundError("input file")
		assert.Equal(t, ErrTypeNotFound, got.Type)
		assert.Equal(t, "input file not found", got.Message)
	})

	t.Run("NewConfigError", func(t *testing.T) {
		got := NewConfigError("Invalid min support", nil)
		assert.Equal(t, ErrTypeConfig, got.Type)
	})
}

func TestAppError_ErrorsIntegration(t *testing.T) {
	t.Run("errors.Is works with AppError", func(t *testing.T) {
		originalErr := fmt.Errorf("original error")
		appErr := NewParsingError("Parse failed", originalErr)

		assert.True(t, errors.Is(appErr, originalErr))

		otherErr := fmt.Errorf("other error")
		assert.False(t, errors.Is(appErr, otherErr))
	})

	t.Run("errors.As works with AppError", func(t *testing.T) {
		originalErr := &AppError{
			Type:    ErrTypeStorage,
			Message: "Storage error",
		}
		wrappedErr := fmt.Errorf("wrapped: %w", originalErr)

		var appErr *AppError
		assert.True(t, errors.As(wrappedErr, &appErr))
		assert.Equal(t, ErrTypeStorage, appErr.Type)
		assert.Equal(t, "Storage error", appErr.Message)
	})

	t.Run("nested error unwrapping", func(t *testing.T) {
		rootErr := fmt.Errorf("root cause")
		appErr1 := NewStorageError("Write error", rootErr)
		appErr2 := NewParsingError("Ingestion error", appErr1)

		assert.True(t, errors.Is(appErr2, appErr1))
		assert.True(t, errors.Is(appErr2, rootErr))

		var storageErr *AppError
		assert.True(t, errors.As(appErr2, &storageErr))
	})
}
