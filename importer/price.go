package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyStripper = strings.NewReplacer("₹", "", "$", "", "€", "", "£", "", ",", "", "Rs.", "", "Rs", "", "INR", "")
	leadingNumber    = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParsePrice coerces a spreadsheet cell to an amount. Currency symbols and
// thousands separators are stripped and the leading number is read, so
// "₹1,234.50" is 1234.5 and "18%" is 18. It never fails: nil, empty and
// unparseable cells are 0, so a bad price cannot reject its row.
func ParsePrice(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	}

	s := strings.TrimSpace(currencyStripper.Replace(cellString(v)))
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
