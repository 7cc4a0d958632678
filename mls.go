package mls

import (
	"fmt"

	"github.com/mulanstring/mls/catalog"
	"github.com/mulanstring/mls/locale"
	"github.com/mulanstring/mls/template"
)

// Parse compiles raw into a template for loc using the default markers. The
// raw text doubles as the template name in error messages.
func Parse(raw string, loc *locale.Locale) (*template.Template, error) {
	return template.New(raw, raw, loc, template.Options{})
}

// Translator compiles templates from a message catalog for one locale.
type Translator struct {
	Catalog catalog.Catalog // nil behaves like catalog.Dummy
	Locale  *locale.Locale
	Options template.Options
}

// NewTranslator returns a Translator for the locale best matching name. The
// locale is resolved against locales and the catalog is taken from prov
// under the resolved name. It fails if nothing matches name and the
// registry's fallback locale is not registered.
func NewTranslator(prov catalog.Provider, locales *locale.Registry, name string, opts template.Options) (Translator, error) {
	var loc = locales.Resolve(name)
	if loc == nil {
		return Translator{}, fmt.Errorf("locale %q: no match and no fallback registered", name)
	}
	return Translator{
		Catalog: prov.Catalog(loc.Name()),
		Locale:  loc,
		Options: opts,
	}, nil
}

// T looks msgid up in the default domain and compiles the translation.
func (tr Translator) T(msgid string) (*template.Template, error) {
	return tr.TD("", msgid)
}

// TD looks msgid up in the given domain and compiles the translation. The
// template is named after msgid.
func (tr Translator) TD(domain, msgid string) (*template.Template, error) {
	var cat = tr.Catalog
	if cat == nil {
		cat = catalog.Dummy{}
	}
	return template.New(msgid, cat.Lookup(domain, msgid), tr.Locale, tr.Options)
}

// MustT is like T but panics if the translation does not compile.
func (tr Translator) MustT(msgid string) *template.Template {
	return template.Must(tr.T(msgid))
}
