package simpleexcel

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is used for time.Time cells.
const DateLayout = "2006-01-02"

// CellValue reduces v to something excelize and encoding/json render well:
// decimals become float64, times become DateLayout strings, SQL nullable
// types become their value or "" when null.
func CellValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.InexactFloat64()
	case decimal.NullDecimal:
		if !x.Valid {
			return ""
		}
		return x.Decimal.InexactFloat64()
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(DateLayout)
	case driver.Valuer:
		val, err := x.Value()
		if err != nil || val == nil {
			return ""
		}
		return CellValue(val)
	}
	return v
}

// TextValue renders v as CSV text. Decimals keep their exact digits.
func TextValue(v interface{}) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return ""
		}
		return x.Decimal.String()
	case string:
		return x
	}
	return fmt.Sprint(CellValue(v))
}
