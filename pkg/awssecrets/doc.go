// Package awssecrets reads secrets from AWS Secrets Manager and parameters from
// AWS Systems Manager Parameter Store.
//
// Every accessor takes a shared, read-only aws.Config, builds a client for
// the duration of the call and issues exactly one request. Nothing is cached
// or retried here; the SDK retryer configured on the handle still applies.
//
// # Usage
//
//	cfg, err := awssecrets.LoadConfig(ctx)
//	if err != nil {
//	    return err
//	}
//
//	creds, err := awssecrets.GetSecret[Credentials](ctx, cfg, "my-creds")
//	if err != nil {
//	    return err
//	}
//
//	dsn, err := awssecrets.GetSecureString(ctx, cfg, "/my/secure/param")
//
// # Errors
//
// Failures are returned as *Error, tagged with the operation Kind and the
// identifier that caused them. Use errors.Is with the Err* sentinels to branch
// on the operation, and Classify on the error to find out why the service
// refused it:
//
//	if errors.Is(err, awssecrets.ErrReadParameter) &&
//	    awssecrets.Classify(err) == awssecrets.ReasonNotFound {
//	    // fall back to a default
//	}
//
// # Concurrency
//
// Accessors share no mutable state. Calls may run concurrently against the
// same config handle.
package awssecrets
