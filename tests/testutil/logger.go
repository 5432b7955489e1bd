package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/aws-secrets/internal/logging"
)

// TestLogger captures the output of a real logging.Logger for validation in tests.
//
// Colors are disabled so assertions can match the level markers directly.
//
// Example usage:
//
//	tl := NewTestLoggerWithDebug(t, false)
//	tl.Logger().With("value", logging.Secret("password123")).Info("stored")
//
//	tl.AssertRedacted(t, "password123")
type TestLogger struct {
	logger *logging.Logger
	buffer *syncBuffer
}

// syncBuffer lets concurrent commands log into one buffer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// NewTestLoggerWithDebug creates a new TestLogger.
//
// When debug is true, Debug() calls are captured in the buffer.
func NewTestLoggerWithDebug(t *testing.T, debug bool) *TestLogger {
	t.Helper()

	buf := &syncBuffer{}
	logger := logging.New(debug, true)
	logger.SetOutput(buf)

	return &TestLogger{logger: logger, buffer: buf}
}

// Logger returns the logger to hand to the code under test.
func (l *TestLogger) Logger() *logging.Logger {
	return l.logger
}

// GetOutput returns the captured log output as a string.
func (l *TestLogger) GetOutput() string {
	return l.buffer.String()
}

// Clear clears the captured log output.
func (l *TestLogger) Clear() {
	l.buffer.Reset()
}

// AssertContains asserts that the log output contains the specified substring.
func (l *TestLogger) AssertContains(t *testing.T, substr string) {
	t.Helper()

	output := l.GetOutput()
	assert.Contains(t, output, substr, "Expected log output to contain %q", substr)
}

// AssertNotContains asserts that the log output does NOT contain the specified substring.
func (l *TestLogger) AssertNotContains(t *testing.T, substr string) {
	t.Helper()

	output := l.GetOutput()
	assert.NotContains(t, output, substr, "Expected log output to NOT contain %q", substr)
}

// AssertRedacted asserts that a secret value is redacted in the log output.
//
// This checks that:
// 1. The secret value itself does NOT appear in logs
// 2. The [REDACTED] marker DOES appear in logs
func (l *TestLogger) AssertRedacted(t *testing.T, secretValue string) {
	t.Helper()
	AssertSecretRedacted(t, l.GetOutput(), secretValue)
}

// AssertLogCount asserts that a specific log level appears a certain number of times.
//
// Level markers:
//   - Info: "✓"
//   - Warn: "⚠"
//   - Error: "✗"
//   - Debug: "[DEBUG]"
func (l *TestLogger) AssertLogCount(t *testing.T, level string, count int) {
	t.Helper()

	var marker string
	switch level {
	case "info":
		marker = "✓"
	case "warn":
		marker = "⚠"
	case "error":
		marker = "✗"
	case "debug":
		marker = "[DEBUG]"
	default:
		t.Fatalf("Unknown log level: %s", level)
	}

	actual := strings.Count(l.GetOutput(), marker)
	assert.Equal(t, count, actual,
		"Expected %d %s log messages, got %d", count, level, actual)
}

// Lines returns the log output split into individual lines.
//
// Empty lines are filtered out.
func (l *TestLogger) Lines() []string {
	lines := strings.Split(l.GetOutput(), "\n")

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}

	return result
}
