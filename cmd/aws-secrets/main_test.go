package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dserrors "github.com/systmms/aws-secrets/internal/errors"
	tu "github.com/systmms/aws-secrets/tests/testutil"
)

func TestRunRejectsInvalidRegionBeforeCallingAWS(t *testing.T) {
	tu.StaticAWSEnv(t)
	chdir(t, t.TempDir())

	metricsFile := filepath.Join(t.TempDir(), "aws_secrets.prom")
	err := run([]string{"--no-color", "--region", "Mars", "--metrics-file", metricsFile, "param", "show"})

	var ce dserrors.ConfigError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "Region", ce.Field)
	assert.FileExists(t, metricsFile)
}

func TestRunMissingExplicitConfig(t *testing.T) {
	tu.StaticAWSEnv(t)

	err := run([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "secret", "show"})
	tu.AssertErrorContains(t, err, "configuration file not found")
}

func TestRunUnknownCommand(t *testing.T) {
	tu.StaticAWSEnv(t)

	err := run([]string{"rotate"})
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}
