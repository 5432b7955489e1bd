package commands

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/systmms/aws-secrets/internal/config"
	dserrors "github.com/systmms/aws-secrets/internal/errors"
	"github.com/systmms/aws-secrets/internal/logging"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

func loggerFor(cfg *config.Config) *logging.Logger {
	if cfg.Logger == nil {
		cfg.Logger = logging.New(false, true)
	}
	return cfg.Logger
}

// callContext bounds a command by the configured timeout
func callContext(parent context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if cfg.Settings.TimeoutSeconds <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(cfg.Settings.TimeoutSeconds)*time.Second)
}

func awsConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	loggerFor(cfg).With("profile", cfg.ProfileName()).Debug("retrieving AWS config.")
	return cfg.AWS(ctx)
}

// logFailure writes the one-line classification of a failed accessor call.
// Service errors carry their message, anything else the full error.
func logFailure(logger *logging.Logger, field, name string, err error) {
	l := logger.With(field, name)

	if awssecrets.ErrorCode(err) != "" {
		l.With("message", awssecrets.ErrorMessage(err)).Error(dserrors.Label(err))
		return
	}
	l.With("error", err.Error()).Error(dserrors.Label(err))
}

func orDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
