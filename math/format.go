package math

import (
	"math"
	"strconv"
	"strings"
)

// zeroDisplayThreshold collapses floating noise around zero to a clean "0"
// so the viewer never shows values like -1.2e-17 or -0
const zeroDisplayThreshold = 1e-10

// FormatNumber renders n with at most precision decimal digits. Trailing
// zeros and a trailing decimal point are stripped, and any value closer to
// zero than 1e-10 comes back as the literal "0".
func FormatNumber(n float64, precision int) string {
	if math.Abs(n) < zeroDisplayThreshold {
		return "0"
	}

	s := strconv.FormatFloat(n, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
