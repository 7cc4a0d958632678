// Package locale defines the languages templates are rendered for: their
// plural categories, grammatical cases, genders and number formats.
package locale

import (
	"fmt"
	"sort"
	"strconv"
)

// Locale is an immutable description of one language variant.
type Locale struct {
	name    string
	plurals []string
	cases   []string
	genders []string
	plural  PluralFunc
	formats map[string]NumberFormat
}

// Spec describes a locale to build. It is the form used in configuration files.
type Spec struct {
	Name       string                  `yaml:"name" toml:"name"`
	PluralRule int                     `yaml:"plural_rule" toml:"plural_rule"`
	Plurals    []string                `yaml:"plurals" toml:"plurals"`
	Cases      []string                `yaml:"cases" toml:"cases"`
	Genders    []string                `yaml:"genders" toml:"genders"`
	Formats    map[string]NumberFormat `yaml:"formats" toml:"formats"`

	// Plural overrides PluralRule when set. It must only return labels
	// listed in Plurals, or "other".
	Plural PluralFunc `yaml:"-" toml:"-"`
}

// New builds a locale, checking that the plural rule cannot produce a label
// the locale does not declare.
func New(spec Spec) (*Locale, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("locale: missing name")
	}
	var l = &Locale{
		name:    spec.Name,
		plurals: append([]string(nil), spec.Plurals...),
		cases:   append([]string(nil), spec.Cases...),
		genders: append([]string(nil), spec.Genders...),
		plural:  spec.Plural,
		formats: make(map[string]NumberFormat, len(spec.Formats)),
	}
	for what, labels := range map[string][]string{
		"plural": l.plurals, "case": l.cases, "gender": l.genders,
	} {
		if err := checkLabels(labels); err != nil {
			return nil, fmt.Errorf("locale %s: %s labels: %v", l.name, what, err)
		}
	}
	if l.plural == nil {
		if spec.PluralRule < 0 || spec.PluralRule >= len(PluralRules) {
			return nil, fmt.Errorf("locale %s: unknown plural rule %d", l.name, spec.PluralRule)
		}
		var rule = PluralRules[spec.PluralRule]
		for _, label := range rule.Labels {
			if label != "other" && indexOf(l.plurals, label) < 0 {
				return nil, fmt.Errorf("locale %s: plural rule %d produces %q, which is not declared",
					l.name, rule.ID, label)
			}
		}
		l.plural = rule.Func
	}
	for name, f := range spec.Formats {
		for _, size := range f.Sizes {
			if size <= 0 {
				return nil, fmt.Errorf("locale %s: format %q: group size %d must be positive", l.name, name, size)
			}
		}
		l.formats[name] = f.clone()
	}
	return l, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// locale tables.
func MustNew(spec Spec) *Locale {
	l, err := New(spec)
	if err != nil {
		panic(err)
	}
	return l
}

func checkLabels(labels []string) error {
	var seen = make(map[string]bool, len(labels))
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("empty label")
		}
		if seen[label] {
			return fmt.Errorf("duplicate label %q", label)
		}
		seen[label] = true
	}
	return nil
}

func (l *Locale) Name() string   { return l.name }
func (l *Locale) String() string { return l.name }

// Plurals returns the plural category labels in declaration order.
func (l *Locale) Plurals() []string { return append([]string(nil), l.plurals...) }

// Cases returns the grammatical case labels in declaration order.
func (l *Locale) Cases() []string { return append([]string(nil), l.cases...) }

// Genders returns the gender labels in declaration order.
func (l *Locale) Genders() []string { return append([]string(nil), l.genders...) }

// Plural classifies n, which must not be negative.
func (l *Locale) Plural(n int64) string {
	return l.plural(n, strconv.FormatInt(n, 10))
}

// Format returns the named number format.
func (l *Locale) Format(name string) (NumberFormat, bool) {
	f, ok := l.formats[name]
	if !ok {
		return NumberFormat{}, false
	}
	return f.clone(), true
}

// FormatNames returns the names of the locale's number formats, sorted.
func (l *Locale) FormatNames() []string {
	var names = make([]string, 0, len(l.formats))
	for name := range l.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
