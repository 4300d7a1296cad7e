package value

import (
	"strconv"
	"strings"
)

// FormatNumber rounds f to maxFrac fractional digits, then strips trailing
// zeros back down to minFrac digits. The decimal separator is always ".".
func FormatNumber(f float64, minFrac, maxFrac int) string {
	if minFrac < 0 {
		minFrac = 0
	}
	if maxFrac < minFrac {
		maxFrac = minFrac
	}

	rounded := strconv.FormatFloat(f, 'f', maxFrac, 64)

	dot := strings.IndexByte(rounded, '.')
	if dot < 0 {
		if minFrac == 0 {
			return rounded
		}
		return rounded + "." + strings.Repeat("0", minFrac)
	}

	intPart := rounded[:dot]
	fracPart := rounded[dot+1:]

	for len(fracPart) > minFrac && strings.HasSuffix(fracPart, "0") {
		fracPart = fracPart[:len(fracPart)-1]
	}

	if len(fracPart) == 0 {
		return intPart
	}
	return intPart + "." + fracPart
}
