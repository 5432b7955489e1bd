package awssecrets_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected awssecrets.Reason
	}{
		{name: "nil", err: nil, expected: awssecrets.ReasonNone},
		{name: "ssm not found", err: &ssmtypes.ParameterNotFound{}, expected: awssecrets.ReasonNotFound},
		{name: "sm not found", err: &smtypes.ResourceNotFoundException{}, expected: awssecrets.ReasonNotFound},
		{name: "wrapped not found", err: fmt.Errorf("op: %w", &ssmtypes.ParameterNotFound{}), expected: awssecrets.ReasonNotFound},
		{name: "version not found", err: &ssmtypes.ParameterVersionNotFound{}, expected: awssecrets.ReasonVersionNotFound},
		{name: "invalid key id", err: &ssmtypes.InvalidKeyId{}, expected: awssecrets.ReasonInvalidKeyID},
		{name: "decryption failure", err: &smtypes.DecryptionFailure{}, expected: awssecrets.ReasonDecryptionFailure},
		{name: "ssm internal", err: &ssmtypes.InternalServerError{}, expected: awssecrets.ReasonInternal},
		{name: "sm internal", err: &smtypes.InternalServiceError{}, expected: awssecrets.ReasonInternal},
		{name: "invalid parameter", err: &smtypes.InvalidParameterException{}, expected: awssecrets.ReasonInvalidParameter},
		{name: "invalid request", err: &smtypes.InvalidRequestException{}, expected: awssecrets.ReasonInvalidRequest},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDeniedException"}, expected: awssecrets.ReasonAccessDenied},
		{name: "throttled", err: &smithy.GenericAPIError{Code: "ThrottlingException"}, expected: awssecrets.ReasonThrottled},
		{name: "generic not found code", err: &smithy.GenericAPIError{Code: "HierarchyNotFound"}, expected: awssecrets.ReasonNotFound},
		{name: "unhandled code", err: &smithy.GenericAPIError{Code: "SomethingNew"}, expected: awssecrets.ReasonUnhandled},
		{name: "transport", err: errors.New("no such host"), expected: awssecrets.ReasonTransport},
		{name: "cancelled", err: context.Canceled, expected: awssecrets.ReasonTransport},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, awssecrets.Classify(tt.err))
		})
	}
}

func TestErrorCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &ssmtypes.ParameterNotFound{Message: aws.String("Parameter /x not found")})
	assert.Equal(t, "ParameterNotFound", awssecrets.ErrorCode(err))
	assert.Equal(t, "Parameter /x not found", awssecrets.ErrorMessage(err))

	assert.Equal(t, "", awssecrets.ErrorCode(errors.New("plain")))
	assert.Equal(t, "<empty>", awssecrets.ErrorMessage(errors.New("plain")))
	assert.Equal(t, "<empty>", awssecrets.ErrorMessage(&smtypes.InternalServiceError{}))
}

func TestReasonString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not-found", awssecrets.ReasonNotFound.String())
	assert.Equal(t, "transport", awssecrets.ReasonTransport.String())
	assert.Equal(t, "unknown", awssecrets.Reason(-1).String())
}
