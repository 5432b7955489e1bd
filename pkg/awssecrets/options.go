package awssecrets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMAPI is the subset of the SSM client used by the parameter accessors.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client used by the
// secret accessors.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	TagResource(ctx context.Context, params *secretsmanager.TagResourceInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.TagResourceOutput, error)
}

// Option customizes a single accessor call.
type Option func(*options)

type options struct {
	ssmClient SSMAPI
	smClient  SecretsManagerAPI
	decoder   Decoder
}

// WithSSMClient makes the call use client instead of building one from the
// config handle.
func WithSSMClient(client SSMAPI) Option {
	return func(o *options) {
		o.ssmClient = client
	}
}

// WithSecretsManagerClient makes the call use client instead of building one
// from the config handle.
func WithSecretsManagerClient(client SecretsManagerAPI) Option {
	return func(o *options) {
		o.smClient = client
	}
}

// WithDecoder sets the decoder used by GetSecret. A nil decoder is ignored.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{decoder: JSONDecoder}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ssm and secretsmanager constructors copy cfg; the handle itself is never written.
func (o *options) ssm(cfg aws.Config) SSMAPI {
	if o.ssmClient != nil {
		return o.ssmClient
	}
	return ssm.NewFromConfig(cfg)
}

func (o *options) secretsManager(cfg aws.Config) SecretsManagerAPI {
	if o.smClient != nil {
		return o.smClient
	}
	return secretsmanager.NewFromConfig(cfg)
}
