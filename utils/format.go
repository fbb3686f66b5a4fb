package utils

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCurrencyVND renders an amount the way the studio displays prices:
// dot-grouped thousands with a VNĐ suffix, e.g. 1250000 -> "1.250.000 VNĐ".
// Fractional đồng are rounded away.
func FormatCurrencyVND(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	return fmt.Sprintf("%s%s VNĐ", sign, grouped)
}
