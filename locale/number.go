package locale

import (
	"math"
	"strconv"
	"strings"
)

// NumberFormat describes how a locale writes numbers.
type NumberFormat struct {
	Group    string `yaml:"group" toml:"group"`       // written between digit groups
	Fraction string `yaml:"fraction" toml:"fraction"` // written before the fractional digits
	Sizes    []int  `yaml:"sizes" toml:"sizes"`       // group sizes from the right; the last repeats. Empty disables grouping.
}

func (f NumberFormat) clone() NumberFormat {
	f.Sizes = append([]int(nil), f.Sizes...)
	return f
}

// FormatInteger writes n with digit grouping. The sign stays outside the groups.
func (f NumberFormat) FormatInteger(n int64) string {
	var digits = strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + f.group(digits[1:])
	}
	return f.group(digits)
}

// FormatReal writes x with digit grouping and the locale's fraction
// separator. prec is the number of fractional digits to round to; trailing
// zeros are dropped. A negative prec keeps the shortest representation that
// reads back as x. Zero prec truncates to the integer part.
func (f NumberFormat) FormatReal(x float64, prec int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	var abs = math.Abs(x)
	var s string
	switch {
	case prec == 0:
		s = strconv.FormatFloat(math.Trunc(abs), 'f', 0, 64)
	case prec < 0:
		s = strconv.FormatFloat(abs, 'f', -1, 64)
	default:
		s = strconv.FormatFloat(abs, 'f', prec, 64)
	}

	var intPart, frac = s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], strings.TrimRight(s[i+1:], "0")
	}

	var out = f.group(intPart)
	if frac != "" {
		out += f.Fraction + frac
	}
	if x < 0 && strings.Trim(intPart+frac, "0") != "" {
		out = "-" + out
	}
	return out
}

// group inserts the group separator into a string of digits.
func (f NumberFormat) group(digits string) string {
	if len(f.Sizes) == 0 {
		return digits
	}
	var parts []string
	var end = len(digits)
	for i := 0; end > 0; i++ {
		var size = f.Sizes[len(f.Sizes)-1]
		if i < len(f.Sizes) {
			size = f.Sizes[i]
		}
		if size <= 0 || end <= size {
			parts = append(parts, digits[:end])
			break
		}
		parts = append(parts, digits[end-size:end])
		end -= size
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, f.Group)
}
