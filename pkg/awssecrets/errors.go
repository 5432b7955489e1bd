package awssecrets

import (
	"errors"
	"fmt"
)

// Kind identifies which operation produced an Error.
type Kind int

const (
	// KindUnknown is reserved and never produced by this package.
	KindUnknown Kind = iota
	// KindSetTag marks a failed secretsmanager:TagResource call.
	KindSetTag
	// KindDeserialize marks a secret payload that could not be decoded.
	KindDeserialize
	// KindReadParameter marks a failed ssm:GetParameter call.
	KindReadParameter
	// KindReadSecret marks a failed secretsmanager:GetSecretValue call.
	KindReadSecret
	// KindMalformedResponse marks a successful call whose response lacked the value.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindSetTag:
		return "set-tag"
	case KindDeserialize:
		return "deserialize"
	case KindReadParameter:
		return "read-parameter"
	case KindReadSecret:
		return "read-secret"
	case KindMalformedResponse:
		return "malformed-response"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Each matches any *Error of the same Kind.
var (
	ErrUnknown           = &Error{Kind: KindUnknown}
	ErrSetTag            = &Error{Kind: KindSetTag}
	ErrDeserialize       = &Error{Kind: KindDeserialize}
	ErrReadParameter     = &Error{Kind: KindReadParameter}
	ErrReadSecret        = &Error{Kind: KindReadSecret}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
)

// Causes wrapped by malformed response errors, naming the missing field.
var (
	ErrNoParameter      = errors.New("response has no parameter")
	ErrNoParameterValue = errors.New("response has no parameter value")
	ErrNoSecretString   = errors.New("response has no secret string")
)

// Error is returned by every accessor in this package.
//
// Name holds the secret or parameter identifier for read, tag and malformed
// response failures. Err holds the underlying SDK or decoder error.
type Error struct {
	Kind Kind
	Name string
	Err  error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindSetTag:
		msg = "couldn't set tags"
	case KindDeserialize:
		msg = "couldn't deserialize secret string"
	case KindReadParameter:
		msg = fmt.Sprintf("[%q] couldn't read param", e.Name)
	case KindReadSecret:
		msg = fmt.Sprintf("[%q] couldn't read secret", e.Name)
	case KindMalformedResponse:
		msg = fmt.Sprintf("[%q] malformed response", e.Name)
	default:
		msg = "unknown error"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel (or any *Error) of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Reason classifies the wrapped cause. See Classify.
func (e *Error) Reason() Reason {
	return Classify(e.Err)
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// NameOf returns the identifier carried by err, or "" if there is none.
func NameOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Name
	}
	return ""
}

func readParameterError(name string, err error) error {
	return &Error{Kind: KindReadParameter, Name: name, Err: err}
}

func readSecretError(name string, err error) error {
	return &Error{Kind: KindReadSecret, Name: name, Err: err}
}

func setTagError(name string, err error) error {
	return &Error{Kind: KindSetTag, Name: name, Err: err}
}

func deserializeError(err error) error {
	return &Error{Kind: KindDeserialize, Err: err}
}

func malformedResponse(name string, missing error) error {
	return &Error{Kind: KindMalformedResponse, Name: name, Err: missing}
}
