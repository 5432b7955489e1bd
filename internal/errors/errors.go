package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// Explain converts an accessor error into a UserError with a suggestion that
// depends on the operation and on why AWS refused the call. Errors that did
// not come from awssecrets are returned unchanged.
func Explain(err error) error {
	var accessErr *awssecrets.Error
	if err == nil || !errors.As(err, &accessErr) {
		return err
	}

	ue := UserError{
		Message:    describe(accessErr),
		Suggestion: suggestion(accessErr),
		Err:        err,
	}
	if accessErr.Err != nil {
		ue.Details = accessErr.Err.Error()
	}
	return ue
}

// Label is the short log line the CLI prints for a failed accessor call
func Label(err error) string {
	reason := awssecrets.Classify(err)
	param := awssecrets.IsKind(err, awssecrets.KindReadParameter)

	switch reason {
	case awssecrets.ReasonNotFound:
		if param {
			return "Parameter not found."
		}
		return "Resource not found."
	case awssecrets.ReasonVersionNotFound:
		return "Parameter version not found."
	case awssecrets.ReasonInvalidKeyID:
		return "Invalid key ID."
	case awssecrets.ReasonDecryptionFailure:
		return "Decryption failure."
	case awssecrets.ReasonInternal:
		if param {
			return "Internal server error."
		}
		return "Internal service error."
	case awssecrets.ReasonInvalidParameter:
		return "Invalid parameter."
	case awssecrets.ReasonInvalidRequest:
		return "Invalid request."
	case awssecrets.ReasonAccessDenied:
		return "Access denied."
	case awssecrets.ReasonThrottled:
		return "Request throttled."
	case awssecrets.ReasonUnhandled:
		return "Unhandled error."
	default:
		return "Unexpected error."
	}
}

func describe(e *awssecrets.Error) string {
	switch e.Kind {
	case awssecrets.KindReadParameter:
		return fmt.Sprintf("Failed to read parameter '%s'", e.Name)
	case awssecrets.KindReadSecret:
		return fmt.Sprintf("Failed to read secret '%s'", e.Name)
	case awssecrets.KindSetTag:
		return fmt.Sprintf("Failed to tag secret '%s'", e.Name)
	case awssecrets.KindDeserialize:
		return "Secret value is not valid JSON for the requested shape"
	case awssecrets.KindMalformedResponse:
		return fmt.Sprintf("AWS returned no value for '%s'", e.Name)
	default:
		return e.Error()
	}
}

func suggestion(e *awssecrets.Error) string {
	switch e.Kind {
	case awssecrets.KindDeserialize:
		return "Check the secret contents with 'aws secretsmanager get-secret-value'"
	case awssecrets.KindMalformedResponse:
		if errors.Is(e.Err, awssecrets.ErrNoSecretString) {
			return "Binary secrets are not supported; store the value as a JSON string"
		}
		return "Verify the parameter has a value"
	}

	switch awssecrets.Classify(e.Err) {
	case awssecrets.ReasonNotFound:
		if e.Kind == awssecrets.KindReadParameter {
			return "Verify the parameter name and path. SSM parameters are case-sensitive"
		}
		return "Verify the secret name and region. List secrets with: 'aws secretsmanager list-secrets'"
	case awssecrets.ReasonVersionNotFound:
		return "Check the version selector on the parameter name"
	case awssecrets.ReasonInvalidKeyID, awssecrets.ReasonDecryptionFailure:
		return "The KMS key may not exist or you lack kms:Decrypt permission"
	case awssecrets.ReasonAccessDenied:
		switch e.Kind {
		case awssecrets.KindReadParameter:
			return "Check IAM permissions: ssm:GetParameter and kms:Decrypt (for SecureString)"
		case awssecrets.KindSetTag:
			return "Check IAM permissions for secretsmanager:TagResource"
		}
		return "Check IAM permissions for secretsmanager:GetSecretValue"
	case awssecrets.ReasonThrottled:
		return "AWS rate limit exceeded. Wait a moment and try again"
	case awssecrets.ReasonInternal:
		return "AWS reported an internal error. Try again later"
	case awssecrets.ReasonInvalidParameter, awssecrets.ReasonInvalidRequest:
		return "Check the identifier format and the state of the secret (it may be scheduled for deletion)"
	case awssecrets.ReasonTransport:
		return transportSuggestion(e.Err)
	}
	return ""
}

func transportSuggestion(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "credentials") || strings.Contains(errStr, "NoCredentialProviders"):
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	case strings.Contains(errStr, "region"):
		return "Set a region with --region or AWS_REGION"
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return "The operation timed out. Check your network connection and try again"
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return "Unable to connect. Check your network and endpoint configuration"
	}
	return ""
}

// IsRetryable reports whether a caller could reasonably retry err.
// Nothing in this module retries on its own.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	switch awssecrets.Classify(err) {
	case awssecrets.ReasonThrottled, awssecrets.ReasonInternal:
		return true
	case awssecrets.ReasonTransport:
		errStr := strings.ToLower(err.Error())
		for _, pattern := range []string{"timeout", "temporary failure", "connection reset", "broken pipe"} {
			if strings.Contains(errStr, pattern) {
				return true
			}
		}
	}
	return false
}
