package query

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when an operation receives an out of range
	// parameter, such as a negative count for Take.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyInput is returned by Average, Min and Max (and their variants)
	// when the sequence has no elements.
	ErrEmptyInput = errors.New("sequence contains no elements")
)
