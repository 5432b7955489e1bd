// Package fakes provides test doubles for the AWS SDK clients used by
// awssecrets.
//
// Fakes are manually implemented (not generated) to provide precise control
// over test behavior, and they record every call they receive.
//
// Usage:
//
//	fake := fakes.NewFakeSSMClient()
//	fake.AddSecureStringParameter("/app/db/password", "hunter2")
//	value, err := awssecrets.GetSecureString(ctx, aws.Config{}, "/app/db/password",
//	    awssecrets.WithSSMClient(fake))
//	// fake.LastGetParameter().WithDecryption is now true
package fakes
