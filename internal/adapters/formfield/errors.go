package formfield

import "github.com/cockroachdb/errors"

// ErrMalformed is returned when a hidden field value is not a valid event list.
var ErrMalformed = errors.New("malformed hidden field value")
