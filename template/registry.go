package template

import (
	"sort"
	"sync"
)

// Registry holds compiled templates by locale and name. Templates handed
// out are clones, so callers may bind values freely. A Registry is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]map[string]*Template // locale name -> template name -> prototype
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]map[string]*Template)}
}

// Add adds a template under its locale and name, replacing any previous one.
func (r *Registry) Add(t *Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var loc = t.loc.Name()
	if r.templates[loc] == nil {
		r.templates[loc] = make(map[string]*Template)
	}
	r.templates[loc][t.name] = t
}

// Replace swaps in the contents of other. It is used to update a registry
// that is already in use after recompilation.
func (r *Registry) Replace(other *Registry) {
	other.mu.RLock()
	var templates = other.templates
	other.mu.RUnlock()

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()
}

// Template returns a fresh copy of the named template for the locale, or nil.
func (r *Registry) Template(locale, name string) *Template {
	r.mu.RLock()
	var t, ok = r.templates[locale][name]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return t.Clone().Reset()
}

// Names returns the template names registered for a locale, sorted.
func (r *Registry) Names(locale string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names = make([]string, 0, len(r.templates[locale]))
	for name := range r.templates[locale] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locales returns the locales with at least one template, sorted.
func (r *Registry) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var locs = make([]string, 0, len(r.templates))
	for loc := range r.templates {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	return locs
}

// Len returns the number of templates across all locales.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int
	for _, m := range r.templates {
		n += len(m)
	}
	return n
}
