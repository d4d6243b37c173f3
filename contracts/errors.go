package contracts

import "errors"

// RetryErr marks a failure as transient; wrapped errors are retried by the
// retry client, all others surface immediately.
var RetryErr = errors.New("retry")

var (
	ErrInvalidVersion      = errors.New("invalid version format")
	ErrMissingReleaseAsset = errors.New("release contains no zip asset")
	ErrMissingExecutable   = errors.New("dependency-check executable not found")
)
