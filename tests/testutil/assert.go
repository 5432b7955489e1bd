package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSecretRedacted verifies that a secret value does not appear in a string.
//
// It checks that the secret value is not present in the output, and that the
// [REDACTED] marker is present instead.
//
// Example usage:
//
//	AssertSecretRedacted(t, logOutput, "password123")
func AssertSecretRedacted(t *testing.T, output, secretValue string) {
	t.Helper()

	assert.NotContains(t, output, secretValue,
		"Secret value %q should be redacted, but appears in output", secretValue)

	assert.Contains(t, output, "[REDACTED]",
		"Expected [REDACTED] marker when secret is used")
}

// AssertErrorContains verifies that an error occurred and contains a substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()

	assert.Error(t, err, "Expected an error to occur")
	if err != nil {
		assert.Contains(t, err.Error(), substr,
			"Error message should contain %q", substr)
	}
}

// AssertLinesContain verifies that specific lines are present in multi-line output.
//
// Example usage:
//
//	AssertLinesContain(t, output, []string{"Parameter not found.", "param_name=/missing"})
func AssertLinesContain(t *testing.T, output string, expectedLines []string) {
	t.Helper()

	lines := strings.Split(output, "\n")

	for _, expected := range expectedLines {
		found := false
		for _, line := range lines {
			if strings.Contains(line, expected) {
				found = true
				break
			}
		}

		assert.True(t, found,
			"Expected to find line containing %q in output", expected)
	}
}

// AssertCommandSuccess verifies that a command executed successfully.
//
// expectedInOutput is optional; an empty string skips the output check.
//
// Example usage:
//
//	out, err := execute(cmd, "show", "-p", "/app/region")
//	AssertCommandSuccess(t, err, out, "us-east-1")
func AssertCommandSuccess(t *testing.T, err error, output string, expectedInOutput string) {
	t.Helper()

	assert.NoError(t, err, "Command should execute successfully. Output:\n%s", output)

	if expectedInOutput != "" {
		assert.Contains(t, output, expectedInOutput,
			"Command output should contain %q", expectedInOutput)
	}
}
