package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/aws-secrets/cmd/aws-secrets/commands"
	"github.com/systmms/aws-secrets/internal/config"
	"github.com/systmms/aws-secrets/internal/logging"
	"github.com/systmms/aws-secrets/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Global flags
	var (
		configFile  string
		noColor     bool
		debug       bool
		profile     string
		region      string
		endpoint    string
		metricsFile string
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "aws-secrets",
		Short: "Read secrets from AWS Secrets Manager and SSM Parameter Store",
		Long: `aws-secrets retrieves secret values from AWS Secrets Manager and
parameters from AWS SSM Parameter Store using the ambient AWS configuration.

Settings are resolved from built-in defaults, then aws-secrets.yaml, then
AWS_* environment variables, then flags.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
			if metricsFile != "" {
				cfg.Metrics = metrics.New()
			}

			return cfg.Load(config.Overrides{
				Profile:  profile,
				Region:   region,
				Endpoint: endpoint,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default \"aws-secrets.yaml\" if present)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS shared config profile")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Custom AWS endpoint URL (e.g. LocalStack)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	// Add commands
	rootCmd.AddCommand(
		commands.NewSecretCommand(cfg),
		commands.NewParamCommand(cfg),
		commands.NewDemoCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(),
	)

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	if werr := cfg.Metrics.WriteTextfile(metricsFile); werr != nil {
		cfg.Logger.Warn("Failed to write metrics to %s: %v", metricsFile, werr)
	}

	return err
}
