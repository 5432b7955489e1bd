package config

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"gopkg.in/validator.v2"
)

var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-[0-9]+$`)

var (
	ErrInvalidRegion  = validator.TextErr{Err: errors.New("invalid region")}
	ErrInvalidUrl     = validator.TextErr{Err: errors.New("invalid url, must start with http:// or https://")}
	ErrInvalidRoleArn = validator.TextErr{Err: errors.New("invalid role arn")}
)

func init() {
	for name, fn := range map[string]validator.ValidationFunc{
		"awsRegion": validateRegion,
		"httpUrl":   validateHttpUrl,
		"roleArn":   validateRoleArn,
	} {
		if err := validator.SetValidationFunc(name, fn); err != nil {
			panic("error registering " + name + " validator: " + err.Error())
		}
	}
}

func asString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", validator.ErrUnsupported
	}
	return s, nil
}

// Empty values are allowed everywhere; the SDK falls back to its own chain.

func validateRegion(v interface{}, _ string) error {
	s, err := asString(v)
	if err != nil || s == "" {
		return err
	}
	if !regionPattern.MatchString(s) {
		return ErrInvalidRegion
	}
	return nil
}

func validateHttpUrl(v interface{}, _ string) error {
	s, err := asString(v)
	if err != nil || s == "" {
		return err
	}
	u, err := url.Parse(s)
	if err != nil {
		return validator.TextErr{Err: errors.New("invalid url syntax: " + err.Error())}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidUrl
	}
	return nil
}

func validateRoleArn(v interface{}, _ string) error {
	s, err := asString(v)
	if err != nil || s == "" {
		return err
	}
	if !strings.HasPrefix(s, "arn:aws") || !strings.Contains(s, ":role/") {
		return ErrInvalidRoleArn
	}
	return nil
}
