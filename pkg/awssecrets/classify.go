package awssecrets

import (
	"errors"
	"strings"

	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
)

// Reason is a provider-independent classification of a failure cause.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotFound
	ReasonVersionNotFound
	ReasonInvalidKeyID
	ReasonDecryptionFailure
	ReasonInternal
	ReasonInvalidParameter
	ReasonInvalidRequest
	ReasonAccessDenied
	ReasonThrottled
	// ReasonUnhandled is a service error with a code not listed above.
	ReasonUnhandled
	// ReasonTransport is a failure without any service error in its chain
	// (network, credentials, cancelled context).
	ReasonTransport
)

var reasonNames = map[Reason]string{
	ReasonNone:              "none",
	ReasonNotFound:          "not-found",
	ReasonVersionNotFound:   "version-not-found",
	ReasonInvalidKeyID:      "invalid-key-id",
	ReasonDecryptionFailure: "decryption-failure",
	ReasonInternal:          "internal-error",
	ReasonInvalidParameter:  "invalid-parameter",
	ReasonInvalidRequest:    "invalid-request",
	ReasonAccessDenied:      "access-denied",
	ReasonThrottled:         "throttled",
	ReasonUnhandled:         "unhandled",
	ReasonTransport:         "transport",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// Classify inspects err (typically the cause of an *Error) and reports why
// the remote call failed. It never looks at the local Kind.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}

	var (
		paramNotFound    *ssmtypes.ParameterNotFound
		versionNotFound  *ssmtypes.ParameterVersionNotFound
		invalidKeyID     *ssmtypes.InvalidKeyId
		ssmInternal      *ssmtypes.InternalServerError
		resourceNotFound *smtypes.ResourceNotFoundException
		decryption       *smtypes.DecryptionFailure
		smInternal       *smtypes.InternalServiceError
		invalidParam     *smtypes.InvalidParameterException
		invalidRequest   *smtypes.InvalidRequestException
	)
	switch {
	case errors.As(err, &paramNotFound), errors.As(err, &resourceNotFound):
		return ReasonNotFound
	case errors.As(err, &versionNotFound):
		return ReasonVersionNotFound
	case errors.As(err, &invalidKeyID):
		return ReasonInvalidKeyID
	case errors.As(err, &decryption):
		return ReasonDecryptionFailure
	case errors.As(err, &ssmInternal), errors.As(err, &smInternal):
		return ReasonInternal
	case errors.As(err, &invalidParam):
		return ReasonInvalidParameter
	case errors.As(err, &invalidRequest):
		return ReasonInvalidRequest
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return ReasonTransport
	}
	code := apiErr.ErrorCode()
	switch {
	case code == "AccessDeniedException", code == "AccessDenied", code == "UnauthorizedOperation":
		return ReasonAccessDenied
	case strings.Contains(code, "Throttl"), code == "TooManyRequestsException", code == "RequestLimitExceeded":
		return ReasonThrottled
	case strings.HasSuffix(code, "NotFound"), strings.HasSuffix(code, "NotFoundException"):
		return ReasonNotFound
	}
	return ReasonUnhandled
}

// ErrorCode returns the service error code in err's chain, or "".
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// ErrorMessage returns the service error message in err's chain, or "<empty>".
func ErrorMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return "<empty>"
}
