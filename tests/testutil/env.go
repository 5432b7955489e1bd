package testutil

import (
	"path/filepath"
	"testing"
)

// awsVars are cleared by IsolateAWSEnv before the caller's values are applied.
var awsVars = []string{
	"AWS_PROFILE",
	"AWS_REGION",
	"AWS_DEFAULT_REGION",
	"AWS_ENDPOINT_URL",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_SESSION_TOKEN",
	"AWS_SECRETS_ASSUME_ROLE",
	"AWS_SECRETS_EXTERNAL_ID",
	"AWS_SECRETS_TIMEOUT",
}

// IsolateAWSEnv hides the developer's AWS setup from a test and applies vars.
//
// Shared config files point into a temp dir and instance metadata is
// disabled. Values are restored when the test completes. Because it uses
// t.Setenv, tests calling it cannot use t.Parallel.
//
// Example usage:
//
//	IsolateAWSEnv(t, map[string]string{
//	    "AWS_REGION":            "us-east-1",
//	    "AWS_ACCESS_KEY_ID":     "AKID",
//	    "AWS_SECRET_ACCESS_KEY": "SECRET",
//	})
func IsolateAWSEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	dir := t.TempDir()
	for _, key := range awsVars {
		t.Setenv(key, "")
	}
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	for key, value := range vars {
		t.Setenv(key, value)
	}
}

// StaticAWSEnv is IsolateAWSEnv with a region and static credentials set.
func StaticAWSEnv(t *testing.T) {
	t.Helper()

	IsolateAWSEnv(t, map[string]string{
		"AWS_REGION":            "us-east-1",
		"AWS_ACCESS_KEY_ID":     "AKIDEXAMPLE",
		"AWS_SECRET_ACCESS_KEY": "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY",
	})
}
