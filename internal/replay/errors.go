package replay

import "github.com/cockroachdb/errors"

// Sentinel kinds for replay failures.
var (
	ErrInvalidScenario   = errors.New("invalid scenario")
	ErrStepFailed        = errors.New("scenario step failed")
	ErrExpectationFailed = errors.New("scenario expectation not met")
	ErrHiddenMismatch    = errors.New("hidden field differs from expected")
)
