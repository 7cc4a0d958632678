// Package mocat provides a catalog.Provider over a gettext message tree:
//
//	<dir>/<locale>/LC_MESSAGES/<domain>.mo
//	<dir>/<locale>/LC_MESSAGES/<domain>.po
//
// Compiled .mo files and plain .po files are both accepted.
package mocat

import (
	"sync"

	"github.com/leonelquinteros/gotext"

	"github.com/mulanstring/mls/catalog"
	"github.com/mulanstring/mls/locale"
)

// Provider loads gettext catalogs lazily, one per locale.
type Provider struct {
	dir     string
	domain  string
	domains []string

	mu      sync.Mutex
	locales map[string]*Catalog
}

var _ catalog.Provider = (*Provider)(nil)

// New returns a provider reading the default domain from dir. Additional
// domains reachable through Lookup may be listed in extra.
func New(domain, dir string, extra ...string) *Provider {
	return &Provider{
		dir:     dir,
		domain:  domain,
		domains: append([]string{domain}, extra...),
		locales: make(map[string]*Catalog),
	}
}

// Catalog returns the catalog for loc. The locale name is normalized first,
// so "pl_PL.UTF-8" reads the pl_PL tree.
func (p *Provider) Catalog(loc string) catalog.Catalog {
	loc = locale.Normalize(loc)
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.locales[loc]; ok {
		return c
	}
	var l = gotext.NewLocale(p.dir, loc)
	for _, dom := range p.domains {
		l.AddDomain(dom)
	}
	var c = &Catalog{loc: l, domain: p.domain}
	p.locales[loc] = c
	return c
}

// Catalog is a single locale of a gettext tree.
type Catalog struct {
	loc    *gotext.Locale
	domain string
}

// Lookup translates msgid. An empty domain selects the provider's default
// domain.
func (c *Catalog) Lookup(domain, msgid string) string {
	if domain == "" {
		domain = c.domain
	}
	return c.loc.GetD(domain, msgid)
}
