package awssecrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
	"github.com/systmms/aws-secrets/tests/fakes"
)

type dummyCredentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

func TestGetSecretDecodesPayload(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("my-dummy-creds", `{"Username":"u","Password":"p"}`)

	creds, err := awssecrets.GetSecret[dummyCredentials](context.Background(), aws.Config{}, "my-dummy-creds",
		awssecrets.WithSecretsManagerClient(fake))
	require.NoError(t, err)
	assert.Equal(t, dummyCredentials{Username: "u", Password: "p"}, creds)

	require.Len(t, fake.GetSecretValueCalls, 1)
	assert.Equal(t, "my-dummy-creds", aws.ToString(fake.GetSecretValueCalls[0].SecretId))
}

func TestGetSecretGenericValue(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("cfg", `{"port":5432,"tags":["a","b"]}`)

	value, err := awssecrets.GetSecret[map[string]any](context.Background(), aws.Config{}, "cfg",
		awssecrets.WithSecretsManagerClient(fake))
	require.NoError(t, err)
	assert.Equal(t, float64(5432), value["port"])
	assert.Equal(t, []any{"a", "b"}, value["tags"])
}

func TestGetSecretInvalidJSON(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("broken", "not-json")

	_, err := awssecrets.GetSecret[dummyCredentials](context.Background(), aws.Config{}, "broken",
		awssecrets.WithSecretsManagerClient(fake))
	require.Error(t, err)
	assert.ErrorIs(t, err, awssecrets.ErrDeserialize)
	assert.NotErrorIs(t, err, awssecrets.ErrReadSecret)
	assert.Contains(t, err.Error(), "couldn't deserialize secret string")
}

func TestGetSecretShapeMismatch(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("numbers", `{"Username":42}`)

	_, err := awssecrets.GetSecret[dummyCredentials](context.Background(), aws.Config{}, "numbers",
		awssecrets.WithSecretsManagerClient(fake))
	assert.ErrorIs(t, err, awssecrets.ErrDeserialize)
}

func TestGetSecretServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		reason awssecrets.Reason
	}{
		{name: "not found", err: &smtypes.ResourceNotFoundException{Message: aws.String("gone")}, reason: awssecrets.ReasonNotFound},
		{name: "decryption failure", err: &smtypes.DecryptionFailure{}, reason: awssecrets.ReasonDecryptionFailure},
		{name: "internal service error", err: &smtypes.InternalServiceError{}, reason: awssecrets.ReasonInternal},
		{name: "invalid parameter", err: &smtypes.InvalidParameterException{}, reason: awssecrets.ReasonInvalidParameter},
		{name: "invalid request", err: &smtypes.InvalidRequestException{}, reason: awssecrets.ReasonInvalidRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := fakes.NewFakeSecretsManagerClient()
			fake.AddError("s", tt.err)

			_, err := awssecrets.GetSecret[dummyCredentials](context.Background(), aws.Config{}, "s",
				awssecrets.WithSecretsManagerClient(fake))
			require.Error(t, err)
			assert.ErrorIs(t, err, awssecrets.ErrReadSecret)
			assert.NotErrorIs(t, err, awssecrets.ErrDeserialize)
			assert.Equal(t, "s", awssecrets.NameOf(err))
			assert.Equal(t, tt.reason, awssecrets.Classify(err))
			assert.Contains(t, err.Error(), `["s"] couldn't read secret`)
		})
	}
}

func TestGetSecretBinaryIsMalformed(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretBinary("blob", []byte{0x01, 0x02})

	_, err := awssecrets.GetSecret[map[string]any](context.Background(), aws.Config{}, "blob",
		awssecrets.WithSecretsManagerClient(fake))
	require.Error(t, err)
	assert.ErrorIs(t, err, awssecrets.ErrMalformedResponse)
	assert.ErrorIs(t, err, awssecrets.ErrNoSecretString)
	assert.Equal(t, "blob", awssecrets.NameOf(err))
}

func TestGetSecretCustomDecoder(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("raw", "user:pass")

	var seen string
	decoder := awssecrets.DecoderFunc(func(payload string, v any) error {
		seen = payload
		*(v.(*string)) = "decoded"
		return nil
	})

	value, err := awssecrets.GetSecret[string](context.Background(), aws.Config{}, "raw",
		awssecrets.WithSecretsManagerClient(fake), awssecrets.WithDecoder(decoder))
	require.NoError(t, err)
	assert.Equal(t, "decoded", value)
	assert.Equal(t, "user:pass", seen)
}

func TestGetSecretString(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("raw", "not even json")

	value, err := awssecrets.GetSecretString(context.Background(), aws.Config{}, "raw",
		awssecrets.WithSecretsManagerClient(fake))
	require.NoError(t, err)
	assert.Equal(t, "not even json", value)
}

func TestSetTag(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("secret-x", "{}")
	ack := &secretsmanager.TagResourceOutput{}
	fake.TagResourceFunc = func(ctx context.Context, params *secretsmanager.TagResourceInput) (*secretsmanager.TagResourceOutput, error) {
		return ack, nil
	}

	out, err := awssecrets.SetTag(context.Background(), aws.Config{}, "secret-x", "k", "v",
		awssecrets.WithSecretsManagerClient(fake))
	require.NoError(t, err)
	assert.Same(t, ack, out, "acknowledgement should be passed through unchanged")

	require.Len(t, fake.TagResourceCalls, 1)
	call := fake.TagResourceCalls[0]
	assert.Equal(t, "secret-x", aws.ToString(call.SecretId))
	require.Len(t, call.Tags, 1)
	assert.Equal(t, "k", aws.ToString(call.Tags[0].Key))
	assert.Equal(t, "v", aws.ToString(call.Tags[0].Value))
}

func TestSetTagOverwritesOnlyItsKey(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()
	fake.AddSecretString("secret-x", "{}")
	ctx := context.Background()
	opt := awssecrets.WithSecretsManagerClient(fake)

	_, err := awssecrets.SetTag(ctx, aws.Config{}, "secret-x", "team", "a", opt)
	require.NoError(t, err)
	_, err = awssecrets.SetTag(ctx, aws.Config{}, "secret-x", "env", "prod", opt)
	require.NoError(t, err)
	_, err = awssecrets.SetTag(ctx, aws.Config{}, "secret-x", "team", "b", opt)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"team": "b", "env": "prod"}, fake.Tags("secret-x"))
}

func TestSetTagFailure(t *testing.T) {
	t.Parallel()

	fake := fakes.NewFakeSecretsManagerClient()

	out, err := awssecrets.SetTag(context.Background(), aws.Config{}, "secret-x", "k", "v",
		awssecrets.WithSecretsManagerClient(fake))
	assert.Nil(t, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, awssecrets.ErrSetTag)
	assert.Equal(t, "secret-x", awssecrets.NameOf(err))
	assert.Equal(t, awssecrets.ReasonNotFound, awssecrets.Classify(err))

	var notFound *smtypes.ResourceNotFoundException
	assert.True(t, errors.As(err, &notFound))
	assert.Len(t, fake.TagResourceCalls, 1)
}
