package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/aws-secrets/internal/config"
	dserrors "github.com/systmms/aws-secrets/internal/errors"
	"github.com/systmms/aws-secrets/internal/logging"
	"github.com/systmms/aws-secrets/internal/metrics"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

// Credentials is the minimal shape expected by 'secret show --credentials'.
type Credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// NewSecretCommand groups the Secrets Manager subcommands
func NewSecretCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Work with AWS Secrets Manager secrets",
	}

	cmd.AddCommand(
		newSecretShowCommand(cfg),
		newSecretTagCommand(cfg),
	)

	return cmd
}

func newSecretShowCommand(cfg *config.Config) *cobra.Command {
	var (
		secretName  string
		schemaFile  string
		credentials bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Retrieve the value of a secret",
		Long: `Retrieve the value of a secret from AWS Secrets Manager.

The secret string must be JSON. By default it is decoded into a generic
value and printed back as indented JSON. With --credentials the secret must
contain at least {"Username": "...", "Password": "..."}.

Examples:
  # Show the default secret
  aws-secrets secret show

  # Validate the payload against a JSON Schema first
  aws-secrets secret show -s prod/db --schema db-creds.schema.json

  # Print the value with its name, for scripting
  aws-secrets secret show -s prod/db --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := orDefault(secretName, cfg.Settings.Secret.Name)
			logger := loggerFor(cfg)

			opts := append([]awssecrets.Option(nil), cfg.ClientOptions...)
			if schemaFile != "" {
				decoder, err := loadSchema(schemaFile)
				if err != nil {
					return err
				}
				opts = append(opts, awssecrets.WithDecoder(decoder))
			}

			ctx, cancel := callContext(cmd.Context(), cfg)
			defer cancel()

			awsCfg, err := awsConfig(ctx, cfg)
			if err != nil {
				return err
			}

			logger.With("secret_name", name).Debug("retrieving secret.")

			start := time.Now()
			var value interface{}
			if credentials {
				value, err = awssecrets.GetSecret[Credentials](ctx, awsCfg, name, opts...)
			} else {
				value, err = awssecrets.GetSecret[interface{}](ctx, awsCfg, name, opts...)
			}
			cfg.Metrics.Observe(metrics.OpGetSecret, start, err)
			if err != nil {
				logFailure(logger, "secret_name", name, err)
				return dserrors.Explain(err)
			}

			logger.With("secret_name", name, "value", logging.Secret(fmt.Sprint(value))).
				Debug("successfully retrieved the secret.")

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, map[string]interface{}{
					"secret": name,
					"value":  value,
				})
			}
			return writeJSON(out, value)
		},
	}

	cmd.Flags().StringVarP(&secretName, "secret-name", "s", "", "Name of the secret to retrieve (default from config: my-dummy-creds)")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "JSON Schema file the secret must satisfy")
	cmd.Flags().BoolVar(&credentials, "credentials", false, "Decode the secret as {Username, Password}")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the value with its secret name as JSON")

	return cmd
}

func loadSchema(path string) (awssecrets.Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dserrors.UserError{
			Message:    fmt.Sprintf("Failed to read schema file '%s'", path),
			Details:    err.Error(),
			Suggestion: "Check the --schema path",
			Err:        err,
		}
	}
	decoder, err := awssecrets.NewSchemaDecoder(string(data))
	if err != nil {
		return nil, dserrors.ConfigError{
			Field:      "schema",
			Value:      path,
			Message:    err.Error(),
			Suggestion: "The file must be a valid JSON Schema document",
		}
	}
	return decoder, nil
}

func newSecretTagCommand(cfg *config.Config) *cobra.Command {
	var (
		secretName string
		tagKey     string
		tagValue   string
	)

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Set a tag on a secret",
		Long: `Set or overwrite one tag on a secret in AWS Secrets Manager.
Other tags on the secret are left untouched.

Examples:
  aws-secrets secret tag
  aws-secrets secret tag -s prod/db -k owner -v platform`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := orDefault(secretName, cfg.Settings.Secret.Name)
			key := orDefault(tagKey, cfg.Settings.Secret.TagKey)
			value := tagValue
			if !cmd.Flags().Changed("tag-value") {
				value = cfg.Settings.Secret.TagValue
			}
			logger := loggerFor(cfg)

			ctx, cancel := callContext(cmd.Context(), cfg)
			defer cancel()

			awsCfg, err := awsConfig(ctx, cfg)
			if err != nil {
				return err
			}

			logger.With("secret_name", name, "tag_key", key, "tag_value", value).Debug("setting tag.")

			start := time.Now()
			_, err = awssecrets.SetTag(ctx, awsCfg, name, key, value, cfg.ClientOptions...)
			cfg.Metrics.Observe(metrics.OpSetTag, start, err)
			if err != nil {
				logFailure(logger, "secret_name", name, err)
				return dserrors.Explain(err)
			}

			logger.Info("Tagged secret '%s' with %s", name, key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&secretName, "secret-name", "s", "", "Name of the secret to tag (default from config: my-dummy-creds)")
	cmd.Flags().StringVarP(&tagKey, "tag-key", "k", "", "Tag key (default from config: my-sample-tag)")
	cmd.Flags().StringVarP(&tagValue, "tag-value", "v", "", "Tag value (default from config: \"some dummy value.\")")

	return cmd
}
