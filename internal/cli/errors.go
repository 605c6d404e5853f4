package cli

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidFormat is returned for an unknown --format value.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrSeedPage is returned when the --seed-page file cannot be used.
	ErrSeedPage = errors.New("invalid seed page")
)
