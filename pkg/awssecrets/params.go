package awssecrets

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// GetString retrieves a String parameter from SSM Parameter Store without
// server-side decryption.
func GetString(ctx context.Context, cfg aws.Config, name string, opts ...Option) (string, error) {
	return fetchParameter(ctx, cfg, name, false, buildOptions(opts))
}

// GetSecureString retrieves a SecureString parameter, asking SSM to decrypt it.
func GetSecureString(ctx context.Context, cfg aws.Config, name string, opts ...Option) (string, error) {
	return fetchParameter(ctx, cfg, name, true, buildOptions(opts))
}

// GetStringList retrieves a StringList parameter and splits it on ",".
// Elements are not trimmed; an empty value yields a single empty element.
func GetStringList(ctx context.Context, cfg aws.Config, name string, opts ...Option) ([]string, error) {
	value, err := fetchParameter(ctx, cfg, name, false, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return strings.Split(value, ","), nil
}

func fetchParameter(ctx context.Context, cfg aws.Config, name string, decrypt bool, o *options) (string, error) {
	client := o.ssm(cfg)

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return "", readParameterError(name, err)
	}

	if out == nil || out.Parameter == nil {
		return "", malformedResponse(name, ErrNoParameter)
	}
	if out.Parameter.Value == nil {
		return "", malformedResponse(name, ErrNoParameterValue)
	}
	return *out.Parameter.Value, nil
}
