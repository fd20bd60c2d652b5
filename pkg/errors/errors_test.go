package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseatlas/caseatlas/pkg/errors"
)

func TestBackendErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		rateLimited bool
		transient   bool
		fatal       bool
	}{
		{"rate limit", 429, true, false, false},
		{"server error", 500, false, true, false},
		{"bad gateway", 502, false, true, false},
		{"unauthorized", 401, false, false, true},
		{"bad request", 400, false, false, true},
		{"no status", 0, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.NewBackendError("short-form", tt.statusCode, "boom")
			assert.Equal(t, tt.rateLimited, errors.IsRateLimited(err))
			assert.Equal(t, tt.transient, errors.IsTransient(err))
			assert.Equal(t, tt.fatal, errors.IsFatal(err))
		})
	}
}

func TestBackendErrorClassificationThroughWrapping(t *testing.T) {
	err := fmt.Errorf("calling backend: %w", errors.NewBackendError("short-form", 429, "slow down"))
	assert.True(t, errors.IsRateLimited(err))
	assert.False(t, errors.IsFatal(err))
}

func TestBudgetError(t *testing.T) {
	err := &errors.BudgetError{PromptTokens: 1_999_950, TokenLimit: 2_000_000, Remaining: -50}
	assert.True(t, errors.IsBudgetExceeded(err))
	assert.Contains(t, err.Error(), "1999950")
}

func TestWrapIONil(t *testing.T) {
	assert.NoError(t, errors.WrapIO("write", "archive/01_01_2026.xlsx", nil))
}

func TestIOErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.WrapIO("write", "archive/01_01_2026.xlsx", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "archive/01_01_2026.xlsx")
}
