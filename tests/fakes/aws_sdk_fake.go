package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// FakeSecretsManagerClient is an in-memory implementation of
// awssecrets.SecretsManagerAPI. It is safe for concurrent use.
type FakeSecretsManagerClient struct {
	mu sync.Mutex

	// Secrets maps secret names to their data
	Secrets map[string]*SecretData
	// Errors maps secret names to errors to return
	Errors map[string]error
	// GetSecretValueFunc allows custom behavior for GetSecretValue
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
	// TagResourceFunc allows custom behavior for TagResource
	TagResourceFunc func(ctx context.Context, params *secretsmanager.TagResourceInput) (*secretsmanager.TagResourceOutput, error)

	// Recorded calls, in order
	GetSecretValueCalls []*secretsmanager.GetSecretValueInput
	TagResourceCalls    []*secretsmanager.TagResourceInput
}

// SecretData holds the data for a fake secret
type SecretData struct {
	SecretString  *string
	SecretBinary  []byte
	VersionId     *string
	VersionStages []string
	CreatedDate   *time.Time
	Tags          map[string]string
}

// NewFakeSecretsManagerClient creates a new fake Secrets Manager client
func NewFakeSecretsManagerClient() *FakeSecretsManagerClient {
	return &FakeSecretsManagerClient{
		Secrets: make(map[string]*SecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecretString adds a string secret to the fake client
func (f *FakeSecretsManagerClient) AddSecretString(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	f.Secrets[name] = &SecretData{
		SecretString:  aws.String(value),
		VersionId:     aws.String("v1-abc123"),
		VersionStages: []string{"AWSCURRENT"},
		CreatedDate:   &now,
		Tags:          make(map[string]string),
	}
}

// AddSecretBinary adds a binary secret to the fake client
func (f *FakeSecretsManagerClient) AddSecretBinary(name string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	f.Secrets[name] = &SecretData{
		SecretBinary:  value,
		VersionId:     aws.String("v1-abc123"),
		VersionStages: []string{"AWSCURRENT"},
		CreatedDate:   &now,
		Tags:          make(map[string]string),
	}
}

// AddError configures the fake to return an error for a specific secret
func (f *FakeSecretsManagerClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

// Tags returns a copy of the tags currently set on a secret
func (f *FakeSecretsManagerClient) Tags(name string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string)
	if data, ok := f.Secrets[name]; ok {
		for k, v := range data.Tags {
			out[k] = v
		}
	}
	return out
}

// GetSecretValue fakes the GetSecretValue operation
func (f *FakeSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.mu.Lock()
	f.GetSecretValueCalls = append(f.GetSecretValueCalls, params)
	fn := f.GetSecretValueFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists {
		return nil, secretNotFound(secretName)
	}

	return &secretsmanager.GetSecretValueOutput{
		ARN:           aws.String(secretARN(secretName)),
		Name:          params.SecretId,
		SecretString:  data.SecretString,
		SecretBinary:  data.SecretBinary,
		VersionId:     data.VersionId,
		VersionStages: data.VersionStages,
		CreatedDate:   data.CreatedDate,
	}, nil
}

// TagResource fakes the TagResource operation, merging tags by key
func (f *FakeSecretsManagerClient) TagResource(ctx context.Context, params *secretsmanager.TagResourceInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.TagResourceOutput, error) {
	f.mu.Lock()
	f.TagResourceCalls = append(f.TagResourceCalls, params)
	fn := f.TagResourceFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists {
		return nil, secretNotFound(secretName)
	}

	for _, tag := range params.Tags {
		data.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return &secretsmanager.TagResourceOutput{}, nil
}

func secretNotFound(name string) error {
	return &types.ResourceNotFoundException{
		Message: aws.String(fmt.Sprintf("Secrets Manager can't find the specified secret: %s", name)),
	}
}

func secretARN(name string) string {
	return fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", name)
}

// FakeSSMClient is an in-memory implementation of awssecrets.SSMAPI.
// It is safe for concurrent use.
type FakeSSMClient struct {
	mu sync.Mutex

	// Parameters maps parameter names to their data
	Parameters map[string]*ParameterData
	// Errors maps parameter names to errors to return
	Errors map[string]error
	// GetParameterFunc allows custom behavior for GetParameter
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)

	// Recorded calls, in order
	GetParameterCalls []*ssm.GetParameterInput
}

// ParameterData holds the data for a fake SSM parameter
type ParameterData struct {
	Name             *string
	Type             ssmtypes.ParameterType
	Value            *string
	Version          int64
	LastModifiedDate *time.Time
	ARN              *string
}

// NewFakeSSMClient creates a new fake SSM client
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
	}
}

// AddParameter adds a parameter of the given type to the fake client
func (f *FakeSSMClient) AddParameter(name string, typ ssmtypes.ParameterType, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	f.Parameters[name] = &ParameterData{
		Name:             aws.String(name),
		Type:             typ,
		Value:            aws.String(value),
		Version:          1,
		LastModifiedDate: &now,
		ARN:              aws.String(fmt.Sprintf("arn:aws:ssm:us-east-1:123456789012:parameter%s", name)),
	}
}

// AddStringParameter adds a String parameter to the fake client
func (f *FakeSSMClient) AddStringParameter(name, value string) {
	f.AddParameter(name, ssmtypes.ParameterTypeString, value)
}

// AddSecureStringParameter adds a SecureString parameter to the fake client
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	f.AddParameter(name, ssmtypes.ParameterTypeSecureString, value)
}

// AddStringListParameter adds a StringList parameter to the fake client
func (f *FakeSSMClient) AddStringListParameter(name, value string) {
	f.AddParameter(name, ssmtypes.ParameterTypeStringList, value)
}

// AddError configures the fake to return an error for a specific parameter
func (f *FakeSSMClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

// LastGetParameter returns the most recent GetParameter input, or nil
func (f *FakeSSMClient) LastGetParameter() *ssm.GetParameterInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.GetParameterCalls) == 0 {
		return nil
	}
	return f.GetParameterCalls[len(f.GetParameterCalls)-1]
}

// GetParameter fakes the GetParameter operation
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.mu.Lock()
	f.GetParameterCalls = append(f.GetParameterCalls, params)
	fn := f.GetParameterFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	paramName := aws.ToString(params.Name)

	if err, exists := f.Errors[paramName]; exists {
		return nil, err
	}

	data, exists := f.Parameters[paramName]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", paramName)),
		}
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:             data.Name,
			Type:             data.Type,
			Value:            data.Value,
			Version:          data.Version,
			LastModifiedDate: data.LastModifiedDate,
			ARN:              data.ARN,
		},
	}, nil
}
