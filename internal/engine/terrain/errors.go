package terrain

import "errors"

var (
	// ErrInvalidParameter is returned before any allocation when synthesis
	// parameters are out of range.
	ErrInvalidParameter = errors.New("invalid terrain parameter")

	// ErrNoiseFailure reports a non-finite noise sample. It is not
	// recoverable: the sampler itself is broken.
	ErrNoiseFailure = errors.New("noise sampler failure")
)
