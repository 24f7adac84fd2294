package camunda

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-datagen/internal/common/errors"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg       string
		retryable bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"write: broken pipe", true},
		{"rpc error: code = PermissionDenied", false},
		{"rpc error: code = NotFound desc = no such process", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := mapZeebeError(cause, "topology", 2)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeWorkflowEngineFailed, stdErr.Code)
	assert.Contains(t, stdErr.Message, "after 3 attempts")
	assert.True(t, stdErr.Retryable)
	assert.ErrorIs(t, err, cause)

	err = mapZeebeError(stderrors.New("unauthorized"), "topology", 0)
	require.ErrorAs(t, err, &stdErr)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, "Zeebe operation 'topology' failed", stdErr.Message)
}
