package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	dserrors "github.com/systmms/aws-secrets/internal/errors"
	"github.com/systmms/aws-secrets/internal/logging"
	"github.com/systmms/aws-secrets/internal/metrics"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when --config is not given. It may be absent.
const DefaultPath = "aws-secrets.yaml"

// Config holds the runtime configuration
type Config struct {
	Path     string
	Logger   *logging.Logger
	Settings Settings
	Metrics  *metrics.Recorder

	// ClientOptions are appended to every accessor call. Tests use it to
	// inject fake clients.
	ClientOptions []awssecrets.Option
}

// Settings is the aws-secrets.yaml structure. Every field can also come
// from the environment or a command-line flag.
type Settings struct {
	Profile    string `yaml:"profile" env:"AWS_PROFILE"`
	Region     string `yaml:"region" env:"AWS_REGION" validate:"awsRegion"`
	Endpoint   string `yaml:"endpoint" env:"AWS_ENDPOINT_URL" validate:"httpUrl"`
	AssumeRole string `yaml:"assume_role" env:"AWS_SECRETS_ASSUME_ROLE" validate:"roleArn"`
	ExternalID string `yaml:"external_id" env:"AWS_SECRETS_EXTERNAL_ID"`

	TimeoutSeconds int `yaml:"timeout_seconds" env:"AWS_SECRETS_TIMEOUT" default:"30" validate:"min=1,max=600"`

	Secret    SecretSettings    `yaml:"secret"`
	Parameter ParameterSettings `yaml:"parameter"`
}

// SecretSettings are the defaults for the secret subcommands
type SecretSettings struct {
	Name     string `yaml:"name" default:"my-dummy-creds" validate:"nonzero"`
	TagKey   string `yaml:"tag_key" default:"my-sample-tag" validate:"nonzero"`
	TagValue string `yaml:"tag_value" default:"some dummy value."`
}

// ParameterSettings are the defaults for the param subcommands
type ParameterSettings struct {
	Name string `yaml:"name" default:"/my/dummy/secure/param" validate:"nonzero"`
}

// Overrides are command-line values. Empty fields leave the setting alone.
type Overrides struct {
	Profile  string
	Region   string
	Endpoint string
}

// Load resolves the settings: struct defaults, then the YAML file, then the
// environment, then overrides. The result is validated last.
// A missing file is only an error when the path was given explicitly.
func (c *Config) Load(o Overrides) error {
	var s Settings
	if err := defaults.Set(&s); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := c.readFile(&s); err != nil {
		return err
	}

	if err := env.Parse(&s); err != nil {
		return dserrors.ConfigError{
			Message:    fmt.Sprintf("invalid environment: %v", err),
			Suggestion: "Check the AWS_* and AWS_SECRETS_* environment variables",
		}
	}

	if o.Profile != "" {
		s.Profile = o.Profile
	}
	if o.Region != "" {
		s.Region = o.Region
	}
	if o.Endpoint != "" {
		s.Endpoint = o.Endpoint
	}

	if err := validate(s); err != nil {
		return err
	}

	c.Settings = s
	if c.Logger != nil {
		c.Logger.With("profile", c.ProfileName(), "region", s.Region).Debug("configuration loaded")
	}
	return nil
}

func (c *Config) readFile(s *Settings) error {
	path := c.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		if os.IsNotExist(err) {
			return dserrors.ConfigError{
				Field:      "path",
				Value:      path,
				Message:    "configuration file not found",
				Suggestion: "Drop --config to use the defaults, or create the file",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return dserrors.ConfigError{
			Value:      path,
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}
	return nil
}

func validate(s Settings) error {
	err := validator.Validate(s)
	if err == nil {
		return nil
	}

	var errs validator.ErrorMap
	if !errors.As(err, &errs) {
		return dserrors.ConfigError{Message: err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	field := fields[0]
	return dserrors.ConfigError{
		Field:      field,
		Message:    errs[field].Error(),
		Suggestion: suggestionFor(field),
	}
}

func suggestionFor(field string) string {
	switch field {
	case "Region":
		return "Use a region code such as us-east-1"
	case "Endpoint":
		return "Use a full URL such as http://localhost:4566"
	case "AssumeRole":
		return "Use a role ARN such as arn:aws:iam::123456789012:role/reader"
	case "TimeoutSeconds":
		return "Pick a timeout between 1 and 600 seconds"
	}
	return ""
}

// ProfileName is the profile shown to the user. It is "default" when none
// is configured.
func (c *Config) ProfileName() string {
	if c.Settings.Profile == "" {
		return "default"
	}
	return c.Settings.Profile
}

// AWS builds the config handle shared by every accessor call
func (c *Config) AWS(ctx context.Context) (aws.Config, error) {
	s := c.Settings

	var opts []awssecrets.ConfigOption
	if s.Region != "" {
		opts = append(opts, awssecrets.WithRegion(s.Region))
	}
	if s.Profile != "" {
		opts = append(opts, awssecrets.WithProfile(s.Profile))
	}
	if s.Endpoint != "" {
		opts = append(opts, awssecrets.WithEndpoint(s.Endpoint))
	}
	if s.AssumeRole != "" {
		opts = append(opts, awssecrets.WithAssumeRole(s.AssumeRole, s.ExternalID))
	}

	cfg, err := awssecrets.LoadConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, dserrors.UserError{
			Message:    fmt.Sprintf("Failed to load AWS configuration for profile '%s'", c.ProfileName()),
			Details:    err.Error(),
			Suggestion: "Check ~/.aws/config, or set AWS_PROFILE and AWS_REGION",
			Err:        err,
		}
	}
	return cfg, nil
}
