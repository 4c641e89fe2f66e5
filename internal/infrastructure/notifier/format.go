package notifier

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCoins renders a coin amount the way players read it: "12.5m",
// "980k", plain digits below a thousand. Two decimals under 10 units,
// none above.
func FormatCoins(amount float64) string {
	switch {
	case amount >= 1e6:
		return scaled(amount/1e6) + "m"
	case amount >= 1e3:
		return scaled(amount/1e3) + "k"
	default:
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
}

func scaled(v float64) string {
	decimals := 0
	if v < 10 {
		decimals = 2
	}

	s := fmt.Sprintf("%.*f", decimals, v)
	if decimals > 0 {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}

	return s
}
