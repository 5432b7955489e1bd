package awssecrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
	"github.com/systmms/aws-secrets/tests/fakes"
)

const credentialsSchema = `{
  "type": "object",
  "required": ["Username", "Password"],
  "properties": {
    "Username": {"type": "string", "minLength": 1},
    "Password": {"type": "string", "minLength": 1}
  }
}`

func TestNewSchemaDecoderRejectsBadSchema(t *testing.T) {
	t.Parallel()

	_, err := awssecrets.NewSchemaDecoder(`{"type": 12}`)
	assert.Error(t, err)
}

func TestSchemaDecoder(t *testing.T) {
	t.Parallel()

	decoder, err := awssecrets.NewSchemaDecoder(credentialsSchema)
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "valid", payload: `{"Username":"u","Password":"p"}`},
		{name: "extra fields allowed", payload: `{"Username":"u","Password":"p","Host":"db"}`},
		{name: "missing password", payload: `{"Username":"u"}`, wantErr: true},
		{name: "wrong type", payload: `{"Username":"u","Password":7}`, wantErr: true},
		{name: "not json", payload: `not-json`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out dummyCredentials
			err := decoder.Decode(tt.payload, &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u", out.Username)
		})
	}
}

func TestSchemaViolationDoesNotLeakValues(t *testing.T) {
	t.Parallel()

	decoder, err := awssecrets.NewSchemaDecoder(credentialsSchema)
	require.NoError(t, err)

	var out dummyCredentials
	err = decoder.Decode(`{"Username":"top-secret-user","Password":""}`, &out)
	require.Error(t, err)

	var violation *awssecrets.SchemaViolationError
	require.True(t, errors.As(err, &violation))
	assert.NotEmpty(t, violation.Violations)
	assert.NotContains(t, err.Error(), "top-secret-user")
}

func TestGetSecretWithSchemaDecoder(t *testing.T) {
	t.Parallel()

	decoder, err := awssecrets.NewSchemaDecoder(credentialsSchema)
	require.NoError(t, err)

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("partial", `{"Username":"u"}`)

	_, err = awssecrets.GetSecret[dummyCredentials](context.Background(), aws.Config{}, "partial",
		awssecrets.WithSecretsManagerClient(fake), awssecrets.WithDecoder(decoder))
	require.Error(t, err)
	assert.ErrorIs(t, err, awssecrets.ErrDeserialize)

	var violation *awssecrets.SchemaViolationError
	assert.True(t, errors.As(err, &violation))
}
