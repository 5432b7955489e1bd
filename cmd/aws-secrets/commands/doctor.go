package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
	"github.com/systmms/aws-secrets/internal/config"
)

// CallerIdentityAPI is the subset of the STS client used by doctor
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// newCallerIdentityClient is replaced in tests
var newCallerIdentityClient = func(cfg aws.Config) CallerIdentityAPI {
	return sts.NewFromConfig(cfg)
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check AWS configuration and credentials",
		Long: `Verify that the AWS config handle can be built and used.

This command checks:
- Profile and region resolution
- Credential resolution
- The caller identity behind those credentials (sts:GetCallerIdentity)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFor(cfg)
			logger.Info("Checking AWS configuration for profile '%s'...", cfg.ProfileName())

			ctx, cancel := callContext(cmd.Context(), cfg)
			defer cancel()

			results := runChecks(ctx, cfg)
			displayCheckResults(cmd.OutOrStdout(), results, verbose)

			healthy := 0
			for _, result := range results {
				if result.Status == "healthy" {
					healthy++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nSummary: %d/%d checks passed\n", healthy, len(results))
			if healthy < len(results) {
				return fmt.Errorf("some checks failed")
			}

			logger.Info("All systems operational!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show suggestions for failed checks")

	return cmd
}

// CheckResult is the outcome of one doctor check
type CheckResult struct {
	Name        string
	Status      string // healthy, error, skipped
	Message     string
	Suggestions []string
}

func runChecks(ctx context.Context, cfg *config.Config) []CheckResult {
	results := make([]CheckResult, 0, 4)

	awsCfg, err := awsConfig(ctx, cfg)
	if err != nil {
		return append(results, CheckResult{
			Name:        "config",
			Status:      "error",
			Message:     err.Error(),
			Suggestions: []string{"Run: aws configure", "Or set AWS_PROFILE to an existing profile"},
		})
	}
	results = append(results, CheckResult{
		Name:    "config",
		Status:  "healthy",
		Message: fmt.Sprintf("profile %s", cfg.ProfileName()),
	})

	if awsCfg.Region == "" {
		results = append(results, CheckResult{
			Name:        "region",
			Status:      "error",
			Message:     "no region resolved",
			Suggestions: []string{"Set AWS_REGION, pass --region, or add region to aws-secrets.yaml"},
		})
	} else {
		results = append(results, CheckResult{Name: "region", Status: "healthy", Message: awsCfg.Region})
	}

	if awsCfg.Credentials == nil {
		return append(results, CheckResult{
			Name:        "credentials",
			Status:      "error",
			Message:     "no credential provider",
			Suggestions: []string{"Run: aws configure", "Or set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY"},
		})
	}
	creds, err := awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return append(results, CheckResult{
			Name:        "credentials",
			Status:      "error",
			Message:     err.Error(),
			Suggestions: []string{"Run: aws configure", "Or set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY"},
		})
	}
	results = append(results, CheckResult{
		Name:    "credentials",
		Status:  "healthy",
		Message: fmt.Sprintf("from %s", creds.Source),
	})

	out, err := newCallerIdentityClient(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return append(results, CheckResult{
			Name:        "identity",
			Status:      "error",
			Message:     err.Error(),
			Suggestions: []string{"Check AWS credentials and permissions to call sts:GetCallerIdentity"},
		})
	}
	return append(results, CheckResult{
		Name:    "identity",
		Status:  "healthy",
		Message: fmt.Sprintf("%s (account %s)", aws.ToString(out.Arn), aws.ToString(out.Account)),
	})
}

// displayCheckResults shows check results in a formatted table
func displayCheckResults(out io.Writer, results []CheckResult, verbose bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "CHECK\tSTATUS\tMESSAGE\n")
	_, _ = fmt.Fprintf(w, "-----\t------\t-------\n")

	for _, result := range results {
		status := result.Status
		switch result.Status {
		case "healthy":
			status = "✓ " + status
		case "error":
			status = "✗ " + status
		default:
			status = "? " + status
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", result.Name, status, result.Message)
	}

	_ = w.Flush()

	if !verbose {
		return
	}
	for _, result := range results {
		if result.Status == "error" && len(result.Suggestions) > 0 {
			_, _ = fmt.Fprintf(out, "\n%s suggestions:\n", result.Name)
			for _, suggestion := range result.Suggestions {
				_, _ = fmt.Fprintf(out, "  • %s\n", suggestion)
			}
		}
	}
}
