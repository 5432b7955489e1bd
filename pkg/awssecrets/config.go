package awssecrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ConfigOption adjusts how LoadConfig resolves the config handle.
type ConfigOption func(*loadSettings)

type loadSettings struct {
	region          string
	profile         string
	endpoint        string
	accessKeyID     string
	secretAccessKey string
	sessionToken    string
	assumeRole      string
	externalID      string
}

// WithRegion overrides the region from the environment.
func WithRegion(region string) ConfigOption {
	return func(s *loadSettings) {
		s.region = region
	}
}

// WithProfile selects a shared config profile.
func WithProfile(profile string) ConfigOption {
	return func(s *loadSettings) {
		s.profile = profile
	}
}

// WithEndpoint points every client at a custom endpoint (LocalStack, VPC endpoints).
func WithEndpoint(endpoint string) ConfigOption {
	return func(s *loadSettings) {
		s.endpoint = endpoint
	}
}

// WithStaticCredentials bypasses the credential chain.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) ConfigOption {
	return func(s *loadSettings) {
		s.accessKeyID = accessKeyID
		s.secretAccessKey = secretAccessKey
		s.sessionToken = sessionToken
	}
}

// WithAssumeRole assumes roleARN on top of the resolved credentials.
// externalID may be empty.
func WithAssumeRole(roleARN, externalID string) ConfigOption {
	return func(s *loadSettings) {
		s.assumeRole = roleARN
		s.externalID = externalID
	}
}

// LoadConfig resolves region and credentials from the ambient environment
// through the SDK's default chain: explicit credentials, environment
// variables, shared config and credentials files, then container or instance
// metadata. It keeps no state, so calling it twice yields equivalent handles.
//
// The returned handle is meant to be shared read-only by every accessor call.
func LoadConfig(ctx context.Context, opts ...ConfigOption) (aws.Config, error) {
	var s loadSettings
	for _, opt := range opts {
		opt(&s)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if s.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(s.region))
	}
	if s.profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(s.profile))
	}
	if s.accessKeyID != "" && s.secretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.accessKeyID, s.secretAccessKey, s.sessionToken),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if s.endpoint != "" {
		cfg.BaseEndpoint = aws.String(s.endpoint)
	}

	if s.assumeRole != "" {
		stsClient := sts.NewFromConfig(cfg)
		provider := stscreds.NewAssumeRoleProvider(stsClient, s.assumeRole, func(o *stscreds.AssumeRoleOptions) {
			if s.externalID != "" {
				o.ExternalID = aws.String(s.externalID)
			}
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return cfg, nil
}
