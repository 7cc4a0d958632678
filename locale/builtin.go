package locale

// Names of the built-in locales.
const (
	EnglishGB = "en_GB"
	EnglishUS = "en_US"
	Polish    = "pl_PL"
	German    = "de_DE"
	French    = "fr_FR"
	Czech     = "cs_CZ"
	Russian   = "ru_RU"
	Japanese  = "ja_JP"
)

// Fallback is the locale used when nothing better matches.
const Fallback = EnglishUS

func formats(group, fraction string) map[string]NumberFormat {
	return map[string]NumberFormat{
		"general": {Group: group, Fraction: fraction},
		"grouped": {Group: group, Fraction: fraction, Sizes: []int{3}},
	}
}

var slavicGenders = []string{"m", "f", "n"}

// Builtin returns specs for the locales every registry starts with.
func Builtin() []Spec {
	return []Spec{
		{
			Name:       EnglishGB,
			PluralRule: 1,
			Plurals:    []string{"one", "other"},
			Formats:    formats(",", "."),
		},
		{
			Name:       EnglishUS,
			PluralRule: 1,
			Plurals:    []string{"one", "other"},
			Formats:    formats(",", "."),
		},
		{
			// nominative, genitive, dative, accusative, instrumental, locative, vocative
			Name:       Polish,
			PluralRule: 9,
			Plurals:    []string{"one", "few", "other"},
			Cases:      []string{"nom", "gen", "dat", "acc", "ins", "loc", "voc"},
			Genders:    slavicGenders,
			Formats:    formats(" ", ","),
		},
		{
			Name:       German,
			PluralRule: 1,
			Plurals:    []string{"one", "other"},
			Cases:      []string{"nom", "gen", "dat", "acc"},
			Genders:    slavicGenders,
			Formats:    formats(".", ","),
		},
		{
			Name:       French,
			PluralRule: 2,
			Plurals:    []string{"zero_one", "other"},
			Genders:    []string{"m", "f"},
			Formats:    formats(" ", ","),
		},
		{
			Name:       Czech,
			PluralRule: 8,
			Plurals:    []string{"one", "few", "other"},
			Cases:      []string{"nom", "gen", "dat", "acc", "voc", "loc", "ins"},
			Genders:    slavicGenders,
			Formats:    formats(" ", ","),
		},
		{
			Name:       Russian,
			PluralRule: 7,
			Plurals:    []string{"one", "few", "other"},
			Cases:      []string{"nom", "gen", "dat", "acc", "ins", "loc"},
			Genders:    slavicGenders,
			Formats:    formats(" ", ","),
		},
		{
			Name:       Japanese,
			PluralRule: 0,
			Plurals:    []string{"other"},
			Formats:    formats(",", "."),
		},
	}
}
