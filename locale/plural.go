package locale

import "strings"

// PluralFunc classifies a non-negative integer into a plural category label.
// digits is the decimal form of n.
type PluralFunc func(n int64, digits string) string

// PluralRule is one of the plural rule families, with the labels it can
// produce.
type PluralRule struct {
	ID     int
	Labels []string
	Func   PluralFunc
}

// PluralRules holds the rule families, indexed by rule number.
// See https://developer.mozilla.org/en-US/docs/Mozilla/Localization/Localization_and_Plurals
var PluralRules = [...]PluralRule{
	{0, []string{"other"}, pluralRule0},
	{1, []string{"one", "other"}, pluralRule1},
	{2, []string{"zero_one", "other"}, pluralRule2},
	{3, []string{"zero", "one", "other"}, pluralRule3},
	{4, []string{"one", "two", "three", "other"}, pluralRule4},
	{5, []string{"one", "few", "other"}, pluralRule5},
	{6, []string{"one", "few", "other"}, pluralRule6},
	{7, []string{"one", "few", "other"}, pluralRule7},
	{8, []string{"one", "few", "other"}, pluralRule8},
	{9, []string{"one", "few", "other"}, pluralRule9},
}

// Asian (Chinese, Japanese, Korean), Persian, Turkic/Altaic, Thai, Lao.
func pluralRule0(n int64, digits string) string {
	return "other"
}

// Germanic, Finno-Ugric, Latin/Greek, Semitic, most Romanic, Vietnamese.
func pluralRule1(n int64, digits string) string {
	if n == 1 {
		return "one"
	}
	return "other"
}

// French, Brazilian Portuguese, Lingala.
func pluralRule2(n int64, digits string) string {
	if n == 0 || n == 1 {
		return "zero_one"
	}
	return "other"
}

// Latvian, Latgalian.
func pluralRule3(n int64, digits string) string {
	switch {
	case strings.HasSuffix(digits, "0"):
		return "zero"
	case strings.HasSuffix(digits, "1") && !strings.HasSuffix(digits, "11"):
		return "one"
	}
	return "other"
}

// Scottish Gaelic.
func pluralRule4(n int64, digits string) string {
	switch {
	case n == 1 || n == 11:
		return "one"
	case n == 2 || n == 12:
		return "two"
	case n >= 3 && n <= 10, n >= 13 && n <= 19:
		return "three"
	}
	return "other"
}

// Romanian.
func pluralRule5(n int64, digits string) string {
	if n == 1 {
		return "one"
	}
	if e := n % 100; n == 0 || e >= 1 && e <= 19 {
		return "few"
	}
	return "other"
}

// Lithuanian.
func pluralRule6(n int64, digits string) string {
	var e = n % 100
	switch {
	case n%10 == 1 && e != 11:
		return "one"
	case n%10 == 0 || e >= 11 && e <= 19:
		return "few"
	}
	return "other"
}

// Belarusian, Russian, Ukrainian.
func pluralRule7(n int64, digits string) string {
	var e = n % 100
	switch {
	case n%10 == 1 && e != 11:
		return "one"
	case n%10 >= 2 && n%10 <= 4 && (e < 12 || e > 14):
		return "few"
	}
	return "other"
}

// Slovak, Czech.
func pluralRule8(n int64, digits string) string {
	switch {
	case n == 1:
		return "one"
	case n >= 2 && n <= 4:
		return "few"
	}
	return "other"
}

// Polish.
func pluralRule9(n int64, digits string) string {
	var e = n % 100
	switch {
	case n == 1:
		return "one"
	case n%10 >= 2 && n%10 <= 4 && (e < 12 || e > 14):
		return "few"
	}
	return "other"
}
