package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/systmms/aws-secrets/internal/config"
	"github.com/systmms/aws-secrets/internal/metrics"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

// writeTestConfig writes yamlContent to an aws-secrets.yaml in a temp dir
// and returns its path.
func writeTestConfig(t *testing.T, yamlContent string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aws-secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
	return path
}

// TestConfigBuilder assembles a loaded *config.Config for command tests.
//
// Example usage:
//
//	cfg := NewTestConfig(t).
//	    WithClientOptions(awssecrets.WithSSMClient(fake)).
//	    Build()
type TestConfigBuilder struct {
	t         *testing.T
	yaml      string
	logger    *TestLogger
	overrides config.Overrides
	opts      []awssecrets.Option
}

// NewTestConfig starts a builder with debug logging captured in memory.
func NewTestConfig(t *testing.T) *TestConfigBuilder {
	t.Helper()

	return &TestConfigBuilder{
		t:      t,
		logger: NewTestLoggerWithDebug(t, true),
	}
}

// WithYAML sets the aws-secrets.yaml content.
func (b *TestConfigBuilder) WithYAML(content string) *TestConfigBuilder {
	b.yaml = content
	return b
}

// WithOverrides sets the command-line overrides.
func (b *TestConfigBuilder) WithOverrides(o config.Overrides) *TestConfigBuilder {
	b.overrides = o
	return b
}

// WithClientOptions injects accessor options, typically fake clients.
func (b *TestConfigBuilder) WithClientOptions(opts ...awssecrets.Option) *TestConfigBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Logger returns the captured logger wired into the built config.
func (b *TestConfigBuilder) Logger() *TestLogger {
	return b.logger
}

// Build loads the config through the normal layering and fails the test on error.
func (b *TestConfigBuilder) Build() *config.Config {
	b.t.Helper()

	cfg := &config.Config{
		Path:          writeTestConfig(b.t, b.yaml+"\n"),
		Logger:        b.logger.Logger(),
		Metrics:       metrics.New(),
		ClientOptions: b.opts,
	}
	require.NoError(b.t, cfg.Load(b.overrides))
	return cfg
}
