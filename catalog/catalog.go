// Package catalog defines where template strings come from. A Provider
// hands out a Catalog per locale; the Catalog maps message ids to the raw
// template text translated for that locale.
//
// Implementations live in sub-packages:
//
//	pocat  a directory of <locale>.po files
//	mocat  a gettext tree of <locale>/LC_MESSAGES/<domain>.{po,mo}
package catalog

// Catalog looks up translated template text.
type Catalog interface {
	// Lookup returns the raw template string for msgid in the named domain
	// ("" for the default domain). Missing translations return msgid
	// unchanged.
	Lookup(domain, msgid string) string
}

// Provider returns the Catalog for a locale.
type Provider interface {
	// Catalog returns the catalog for locale. It never returns nil; a locale
	// with no translations gets Dummy.
	Catalog(locale string) Catalog
}

// Dummy is a Catalog and Provider that returns every msgid untranslated.
type Dummy struct{}

var (
	_ Catalog  = Dummy{}
	_ Provider = Dummy{}
)

func (Dummy) Lookup(domain, msgid string) string { return msgid }

func (Dummy) Catalog(string) Catalog { return Dummy{} }

// Map is an in-memory Catalog keyed by domain and msgid.
type Map map[string]map[string]string

// Set adds a translation.
func (m Map) Set(domain, msgid, msgstr string) {
	if m[domain] == nil {
		m[domain] = make(map[string]string)
	}
	m[domain][msgid] = msgstr
}

func (m Map) Lookup(domain, msgid string) string {
	if s, ok := m[domain][msgid]; ok && s != "" {
		return s
	}
	return msgid
}
