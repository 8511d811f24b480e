package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsThrottling(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"provisioned throughput", &smithy.GenericAPIError{Code: "ProvisionedThroughputExceededException"}, true},
		{"throttling", &smithy.GenericAPIError{Code: "ThrottlingException"}, true},
		{"request limit", &smithy.GenericAPIError{Code: "RequestLimitExceeded"}, true},
		{"wrapped", fmt.Errorf("batch: %w", &smithy.GenericAPIError{Code: "ThrottlingException"}), true},
		{"validation", &smithy.GenericAPIError{Code: "ValidationException"}, false},
		{"plain", errors.New("timeout"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsThrottling(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	wrapped := Wrapf(NewNotFoundError("clutch clutch-1"), "consolidating %s", "clutch-1")
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "consolidating clutch-1: clutch clutch-1 not found", GetAppError(wrapped).Message)

	plain := Wrap(errors.New("disk full"), "writing summary")
	assert.True(t, IsType(plain, ErrorTypeInternal))
	assert.EqualError(t, errors.Unwrap(plain), "disk full")
}

func TestDatabaseErrorWithoutAWSCode(t *testing.T) {
	err := NewDatabaseError("BatchWriteItem", errors.New("dial tcp: refused"))

	assert.True(t, IsDatabase(err))
	assert.Empty(t, err.Code)
	assert.Nil(t, err.Details)
}
