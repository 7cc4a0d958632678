package locale

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Registry is a set of locales addressable by name. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	locales  map[string]*Locale
	tags     []language.Tag
	names    []string // parallel to tags
	matcher  language.Matcher
	fallback string
}

// NewRegistry returns a registry holding the given locales, falling back
// to en_US.
func NewRegistry(locales ...*Locale) (*Registry, error) {
	var r = &Registry{
		locales:  make(map[string]*Locale),
		fallback: Fallback,
	}
	for _, l := range locales {
		if err := r.Add(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a new registry holding the built-in locales.
func Default() *Registry {
	var r, _ = NewRegistry()
	for _, spec := range Builtin() {
		if err := r.Add(MustNew(spec)); err != nil {
			panic(err)
		}
	}
	return r
}

// Add registers a locale. Names must be unique.
func (r *Registry) Add(l *Locale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locales[l.name]; ok {
		return fmt.Errorf("locale %s: already registered", l.name)
	}
	r.locales[l.name] = l
	if tag, err := language.Parse(strings.Replace(l.name, "_", "-", -1)); err == nil {
		r.tags = append(r.tags, tag)
		r.names = append(r.names, l.name)
		r.matcher = nil
	}
	return nil
}

// AddSpec builds and registers a locale.
func (r *Registry) AddSpec(spec Spec) (*Locale, error) {
	l, err := New(spec)
	if err != nil {
		return nil, err
	}
	return l, r.Add(l)
}

// SetFallback changes the locale Resolve returns when nothing matches.
func (r *Registry) SetFallback(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locales[name]; !ok {
		return fmt.Errorf("locale %s: not registered", name)
	}
	r.fallback = name
	return nil
}

// Lookup returns the locale with exactly the given name.
func (r *Registry) Lookup(name string) (*Locale, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.locales[name]
	return l, ok
}

// Names returns the registered locale names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names = make([]string, 0, len(r.locales))
	for name := range r.locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve finds the locale best matching an environment-style locale
// string such as "pl_PL.UTF-8", "pl-PL" or "pl". "C" and "POSIX" select
// the fallback, as does anything unrecognized. Resolve returns nil only if
// the fallback locale is not registered.
func (r *Registry) Resolve(name string) *Locale {
	var norm = Normalize(name)
	r.mu.RLock()
	if l, ok := r.locales[norm]; ok {
		r.mu.RUnlock()
		return l
	}
	var fallback = r.locales[r.fallback]
	r.mu.RUnlock()
	if norm == "" {
		return fallback
	}

	tag, err := language.Parse(strings.Replace(norm, "_", "-", -1))
	if err != nil {
		return fallback
	}
	if l := r.match(tag); l != nil {
		return l
	}
	return fallback
}

func (r *Registry) match(tag language.Tag) *Locale {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tags) == 0 {
		return nil
	}
	if r.matcher == nil {
		r.matcher = language.NewMatcher(r.tags)
	}
	_, index, conf := r.matcher.Match(tag)
	if conf == language.No {
		return nil
	}
	return r.locales[r.names[index]]
}

// Normalize strips the charset and modifier from a locale string and turns
// dashes into underscores. "C" and "POSIX" normalize to "".
func Normalize(name string) string {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	name = strings.Replace(strings.TrimSpace(name), "-", "_", -1)
	switch name {
	case "C", "POSIX":
		return ""
	}
	return name
}
