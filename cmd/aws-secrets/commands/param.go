package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
	"github.com/systmms/aws-secrets/internal/config"
	dserrors "github.com/systmms/aws-secrets/internal/errors"
	"github.com/systmms/aws-secrets/internal/metrics"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

// NewParamCommand groups the SSM Parameter Store subcommands
func NewParamCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "param",
		Aliases: []string{"parameter"},
		Short:   "Work with AWS SSM Parameter Store parameters",
	}

	cmd.AddCommand(newParamShowCommand(cfg))

	return cmd
}

func newParamShowCommand(cfg *config.Config) *cobra.Command {
	var (
		paramName  string
		noDecrypt  bool
		list       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Retrieve the value of a parameter",
		Long: `Retrieve the value of a parameter from AWS SSM Parameter Store.

SecureString parameters are decrypted unless --no-decrypt is given.
--list splits a StringList parameter on commas and prints one item per line.

Examples:
  # Show the default SecureString parameter
  aws-secrets param show

  # Show a plain String parameter
  aws-secrets param show -p /app/region --no-decrypt

  # Show a StringList parameter
  aws-secrets param show -p /app/hosts --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := orDefault(paramName, cfg.Settings.Parameter.Name)
			logger := loggerFor(cfg)

			ctx, cancel := callContext(cmd.Context(), cfg)
			defer cancel()

			awsCfg, err := awsConfig(ctx, cfg)
			if err != nil {
				return err
			}

			dataType := parameterType(noDecrypt, list)
			logger.With("data_type", dataType, "param_name", name).Debug("retrieving parameter.")

			start := time.Now()
			value, err := fetchParam(ctx, awsCfg, name, noDecrypt, list, cfg.ClientOptions)
			cfg.Metrics.Observe(metrics.OpGetParameter, start, err)
			if err != nil {
				logFailure(logger, "param_name", name, err)
				return dserrors.Explain(err)
			}

			logger.With("param_name", name).Debug("successfully retrieved the parameter.")

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, map[string]interface{}{
					"parameter": name,
					"type":      dataType,
					"value":     value,
				})
			}
			if items, ok := value.([]string); ok {
				for _, item := range items {
					fmt.Fprintln(out, item)
				}
				return nil
			}
			fmt.Fprintln(out, value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&paramName, "param-name", "p", "", "Name of the parameter to retrieve (default from config: /my/dummy/secure/param)")
	cmd.Flags().BoolVarP(&noDecrypt, "no-decrypt", "n", false, "Retrieve without decryption (String data type)")
	cmd.Flags().BoolVar(&list, "list", false, "Treat the parameter as a StringList")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the value with its name and type as JSON")

	return cmd
}

func parameterType(noDecrypt, list bool) string {
	switch {
	case list:
		return "StringList"
	case noDecrypt:
		return "String"
	default:
		return "SecureString"
	}
}

// fetchParam returns a string, or a []string when list is set
func fetchParam(ctx context.Context, awsCfg aws.Config, name string, noDecrypt, list bool, opts []awssecrets.Option) (interface{}, error) {
	switch {
	case list:
		return awssecrets.GetStringList(ctx, awsCfg, name, opts...)
	case noDecrypt:
		return awssecrets.GetString(ctx, awsCfg, name, opts...)
	default:
		return awssecrets.GetSecureString(ctx, awsCfg, name, opts...)
	}
}
