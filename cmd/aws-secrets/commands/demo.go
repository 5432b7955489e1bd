package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/aws-secrets/internal/config"
	dserrors "github.com/systmms/aws-secrets/internal/errors"
	"github.com/systmms/aws-secrets/internal/metrics"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
	"golang.org/x/sync/errgroup"
)

// NewDemoCommand fetches a parameter and a secret concurrently
func NewDemoCommand(cfg *config.Config) *cobra.Command {
	var (
		secretName string
		paramName  string
		noDecrypt  bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Retrieve a secret and a parameter concurrently",
		Long: `Retrieve values from AWS Secrets Manager and AWS SSM Parameter Store
at the same time, sharing one AWS config. The first failure cancels the
other request.

Examples:
  aws-secrets demo
  aws-secrets demo -s prod/db -p /app/region --no-decrypt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sName := orDefault(secretName, cfg.Settings.Secret.Name)
			pName := orDefault(paramName, cfg.Settings.Parameter.Name)
			logger := loggerFor(cfg)

			ctx, cancel := callContext(cmd.Context(), cfg)
			defer cancel()

			awsCfg, err := awsConfig(ctx, cfg)
			if err != nil {
				return err
			}

			logger.With("secret_name", sName).Debug("retrieving secret.")
			logger.With("param_name", pName).Debug("retrieving parameter.")

			var (
				paramValue  string
				secretValue interface{}
			)

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				start := time.Now()
				var err error
				if noDecrypt {
					paramValue, err = awssecrets.GetString(gctx, awsCfg, pName, cfg.ClientOptions...)
				} else {
					paramValue, err = awssecrets.GetSecureString(gctx, awsCfg, pName, cfg.ClientOptions...)
				}
				cfg.Metrics.Observe(metrics.OpGetParameter, start, err)
				if err != nil && !cancelledByGroup(gctx, err) {
					logFailure(logger, "param_name", pName, err)
				}
				return err
			})

			g.Go(func() error {
				start := time.Now()
				var err error
				secretValue, err = awssecrets.GetSecret[interface{}](gctx, awsCfg, sName, cfg.ClientOptions...)
				cfg.Metrics.Observe(metrics.OpGetSecret, start, err)
				if err != nil && !cancelledByGroup(gctx, err) {
					logFailure(logger, "secret_name", sName, err)
				}
				return err
			})

			if err := g.Wait(); err != nil {
				return dserrors.Explain(err)
			}

			logger.With("secret_name", sName).Debug("successfully retrieved the secret.")
			logger.With("param_name", pName).Debug("successfully retrieved the parameter.")

			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"parameter": map[string]interface{}{"name": pName, "value": paramValue},
				"secret":    map[string]interface{}{"name": sName, "value": secretValue},
			})
		},
	}

	cmd.Flags().StringVarP(&secretName, "secret-name", "s", "", "Name of the secret to retrieve (default from config: my-dummy-creds)")
	cmd.Flags().StringVarP(&paramName, "param-name", "p", "", "Name of the parameter to retrieve (default from config: /my/dummy/secure/param)")
	cmd.Flags().BoolVarP(&noDecrypt, "no-decrypt", "n", false, "Retrieve the parameter without decryption (String data type)")

	return cmd
}

// cancelledByGroup reports whether err only says the request was abandoned
// after the other request failed. Only the failing request is logged.
func cancelledByGroup(gctx context.Context, err error) bool {
	return gctx.Err() != nil && errors.Is(err, context.Canceled)
}
