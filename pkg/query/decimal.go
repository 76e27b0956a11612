package query

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// SumDecimal adds the selected decimal values. It returns zero for an empty s.
func SumDecimal[T any](s []T, sel func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range s {
		total = total.Add(sel(v))
	}
	return total
}

// AverageDecimal returns the mean of the selected decimal values, rounded to
// decimal.DivisionPrecision places.
func AverageDecimal[T any](s []T, sel func(T) decimal.Decimal) (decimal.Decimal, error) {
	if len(s) == 0 {
		return decimal.Zero, errors.Wrap(ErrEmptyInput, "average")
	}
	return SumDecimal(s, sel).Div(decimal.NewFromInt(int64(len(s)))), nil
}
