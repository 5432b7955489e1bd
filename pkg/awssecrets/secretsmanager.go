package awssecrets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// GetSecret retrieves a secret from Secrets Manager and decodes its string
// payload into a T. Binary secrets are reported as malformed responses.
//
//	creds, err := awssecrets.GetSecret[Credentials](ctx, cfg, "my-creds")
func GetSecret[T any](ctx context.Context, cfg aws.Config, name string, opts ...Option) (T, error) {
	var v T
	o := buildOptions(opts)

	payload, err := fetchSecretString(ctx, cfg, name, o)
	if err != nil {
		return v, err
	}
	if err := o.decoder.Decode(payload, &v); err != nil {
		return v, deserializeError(err)
	}
	return v, nil
}

// GetSecretString retrieves the raw string payload of a secret.
func GetSecretString(ctx context.Context, cfg aws.Config, name string, opts ...Option) (string, error) {
	return fetchSecretString(ctx, cfg, name, buildOptions(opts))
}

func fetchSecretString(ctx context.Context, cfg aws.Config, name string, o *options) (string, error) {
	client := o.secretsManager(cfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", readSecretError(name, err)
	}
	if out == nil || out.SecretString == nil {
		return "", malformedResponse(name, ErrNoSecretString)
	}
	return *out.SecretString, nil
}

// SetTag sets or overwrites the tag key=value on a secret. Other tags are left
// untouched. The service acknowledgement is returned as is.
func SetTag(ctx context.Context, cfg aws.Config, name, key, value string, opts ...Option) (*secretsmanager.TagResourceOutput, error) {
	client := buildOptions(opts).secretsManager(cfg)

	out, err := client.TagResource(ctx, &secretsmanager.TagResourceInput{
		SecretId: aws.String(name),
		Tags: []types.Tag{
			{Key: aws.String(key), Value: aws.String(value)},
		},
	})
	if err != nil {
		return nil, setTagError(name, err)
	}
	return out, nil
}
