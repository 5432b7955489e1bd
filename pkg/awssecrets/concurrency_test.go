package awssecrets_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
	"github.com/systmms/aws-secrets/tests/fakes"
)

// TestConcurrentParameterAndSecret runs one parameter fetch and one secret
// fetch at the same time, forcing each completion order in turn.
func TestConcurrentParameterAndSecret(t *testing.T) {
	t.Parallel()

	for _, paramFirst := range []bool{true, false} {
		paramFirst := paramFirst
		t.Run(fmt.Sprintf("param_first=%t", paramFirst), func(t *testing.T) {
			t.Parallel()

			paramDone := make(chan struct{})
			secretDone := make(chan struct{})

			ssmFake := fakes.NewFakeSSMClient()
			ssmFake.GetParameterFunc = func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
				if !paramFirst {
					<-secretDone
				}
				return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{
					Name:  params.Name,
					Value: aws.String("param-value"),
				}}, nil
			}

			smFake := fakes.NewFakeSecretsManagerClient()
			smFake.GetSecretValueFunc = func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				if paramFirst {
					<-paramDone
				}
				return &secretsmanager.GetSecretValueOutput{
					Name:         params.SecretId,
					SecretString: aws.String(`{"Username":"u","Password":"p"}`),
				}, nil
			}

			ctx := context.Background()
			cfg := aws.Config{Region: "us-east-1"}

			var (
				wg        sync.WaitGroup
				param     string
				paramErr  error
				creds     dummyCredentials
				secretErr error
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				defer close(paramDone)
				param, paramErr = awssecrets.GetSecureString(ctx, cfg, "/p", awssecrets.WithSSMClient(ssmFake))
			}()
			go func() {
				defer wg.Done()
				defer close(secretDone)
				creds, secretErr = awssecrets.GetSecret[dummyCredentials](ctx, cfg, "s", awssecrets.WithSecretsManagerClient(smFake))
			}()

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("Timeout waiting for concurrent calls")
			}

			require.NoError(t, paramErr)
			require.NoError(t, secretErr)
			assert.Equal(t, "param-value", param)
			assert.Equal(t, dummyCredentials{Username: "u", Password: "p"}, creds)
			assert.Equal(t, "us-east-1", cfg.Region, "config handle must not change")
		})
	}
}

// TestConcurrentMixedOutcomes verifies failures stay with the call that produced them.
func TestConcurrentMixedOutcomes(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping concurrency test in short mode")
	}

	t.Parallel()

	ssmFake := fakes.NewFakeSSMClient()
	smFake := fakes.NewFakeSecretsManagerClient()
	for i := 0; i < 10; i++ {
		ssmFake.AddStringParameter(fmt.Sprintf("/p/%d", i), fmt.Sprintf("v%d", i))
		smFake.AddSecretString(fmt.Sprintf("s/%d", i), fmt.Sprintf(`{"Username":"u%d"}`, i))
	}

	ctx := context.Background()
	cfg := aws.Config{}

	const numGoroutines = 40
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	errs := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			idx := id % 20
			if id%2 == 0 {
				name := fmt.Sprintf("/p/%d", idx)
				value, err := awssecrets.GetString(ctx, cfg, name, awssecrets.WithSSMClient(ssmFake))
				switch {
				case idx < 10 && (err != nil || value != fmt.Sprintf("v%d", idx)):
					errs <- fmt.Errorf("%s: got %q, %v", name, value, err)
				case idx >= 10 && awssecrets.NameOf(err) != name:
					errs <- fmt.Errorf("%s: error carries %q", name, awssecrets.NameOf(err))
				}
				return
			}

			name := fmt.Sprintf("s/%d", idx)
			creds, err := awssecrets.GetSecret[dummyCredentials](ctx, cfg, name, awssecrets.WithSecretsManagerClient(smFake))
			switch {
			case idx < 10 && (err != nil || creds.Username != fmt.Sprintf("u%d", idx)):
				errs <- fmt.Errorf("%s: got %+v, %v", name, creds, err)
			case idx >= 10 && awssecrets.NameOf(err) != name:
				errs <- fmt.Errorf("%s: error carries %q", name, awssecrets.NameOf(err))
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		failures = append(failures, err)
	}
	assert.Empty(t, failures)
}
