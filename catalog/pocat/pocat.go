// Package pocat provides a catalog.Provider backed by a directory of PO files,
// one per locale.
package pocat

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/robfig/gettext/po"
	"golang.org/x/text/language"

	"github.com/mulanstring/mls/catalog"
	"github.com/mulanstring/mls/locale"
)

// FileOpener defines an abstraction for opening a po file given a locale.
type FileOpener interface {
	// Open returns ReadCloser for the po file indicated by locale. It returns
	// nil if the file does not exist.
	Open(locale string) (io.ReadCloser, error)
}

// Message is one translated entry of a PO file.
type Message struct {
	Id         string
	Str        string   // translated template; "" if untranslated
	References []string // source references from "#:" comments
}

// Catalog holds the messages of a single PO file. The file carries one
// domain, so the domain passed to Lookup is ignored.
type Catalog struct {
	locale   string
	messages map[string]Message
}

var _ catalog.Catalog = (*Catalog)(nil)

// Parse reads a PO file for the given locale.
func Parse(locale string, r io.Reader) (*Catalog, error) {
	file, err := po.Parse(r)
	if err != nil {
		return nil, err
	}
	var c = &Catalog{locale: locale, messages: make(map[string]Message)}
	for _, msg := range file.Messages {
		if msg.Id == "" {
			continue // header
		}
		var str string
		if len(msg.Str) > 0 {
			str = msg.Str[0]
		}
		c.messages[msg.Id] = Message{
			Id:         msg.Id,
			Str:        str,
			References: msg.References,
		}
	}
	return c, nil
}

// ParseFile reads the named PO file. The locale is taken from the file name,
// so "msgs/pl_PL.po" holds pl_PL.
func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(LocaleOf(path), f)
}

// LocaleOf returns the locale named by a PO file path.
func LocaleOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".po")
}

func (c *Catalog) Locale() string { return c.locale }

func (c *Catalog) Lookup(domain, msgid string) string {
	if msg, ok := c.messages[msgid]; ok && msg.Str != "" {
		return msg.Str
	}
	return msgid
}

// Messages returns the catalog entries sorted by id.
func (c *Catalog) Messages() []Message {
	var msgs = make([]Message, 0, len(c.messages))
	for _, m := range c.messages {
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].Id < msgs[j].Id })
	return msgs
}

type provider struct {
	catalogs map[string]*Catalog
}

// Load returns a catalog.Provider that takes its translations by passing in
// the specified locales to the given FileOpener.
//
// Supports fallbacks for when a given locale does not exist: pl_PL is served
// from pl.po when there is no pl_PL.po.
func Load(opener FileOpener, locales []string) (catalog.Provider, error) {
	var prov = provider{make(map[string]*Catalog)}
	for _, loc := range locales {
		r, err := opener.Open(loc)
		if err != nil {
			return nil, err
		}
		if r == nil {
			for _, fb := range fallbacks(loc) {
				if r, err = opener.Open(fb); err != nil {
					return nil, err
				}
				if r != nil {
					break
				}
			}
			if r == nil {
				continue
			}
		}

		c, err := Parse(loc, r)
		r.Close()
		if err != nil {
			return nil, err
		}
		prov.catalogs[loc] = c
	}
	return prov, nil
}

// fsFileOpener is a FileOpener based on the filesystem and rooted at Dirname.
type fsFileOpener struct {
	Dirname string
}

func (o fsFileOpener) Open(locale string) (io.ReadCloser, error) {
	switch f, err := os.Open(filepath.Join(o.Dirname, locale+".po")); {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, err
	default:
		return f, nil
	}
}

// Dir returns a catalog.Provider that takes translations from the given path.
// For example, if dir is "/usr/local/msgs", po files should be of the form:
//
//	/usr/local/msgs/<lang>.po
//	/usr/local/msgs/<lang>_<territory>.po
func Dir(dirname string) (catalog.Provider, error) {
	var files, err = os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	var locales []string
	for _, fi := range files {
		var name = fi.Name()
		if !fi.IsDir() && strings.HasSuffix(name, ".po") {
			locales = append(locales, LocaleOf(name))
		}
	}
	return Load(fsFileOpener{dirname}, locales)
}

// Catalog returns the catalog for loc, trying its fallbacks in turn.
// Locales with no catalog get catalog.Dummy.
func (p provider) Catalog(loc string) catalog.Catalog {
	if c, ok := p.catalogs[loc]; ok {
		return c
	}
	if c, ok := p.catalogs[locale.Normalize(loc)]; ok {
		return c
	}
	for _, fb := range fallbacks(loc) {
		if c, ok := p.catalogs[fb]; ok {
			return c
		}
	}
	return catalog.Dummy{}
}

// fallbacks returns the locale names that can be substituted for loc,
// ordered by increasing generality, in underscore form: sr_Latn_RS, sr_Latn,
// sr. The language package reports ZZ for an unspecified region and Zzzz for
// an unspecified script.
func fallbacks(loc string) []string {
	tag, err := language.Parse(strings.Replace(locale.Normalize(loc), "_", "-", -1))
	if err != nil {
		return nil
	}
	var (
		names                = []string{}
		lang, script, region = tag.Raw()
	)
	add := func(parts ...interface{}) {
		if t, err := language.Compose(parts...); err == nil {
			names = append(names, strings.Replace(t.String(), "-", "_", -1))
		}
	}
	if region.String() != "ZZ" {
		add(lang, script, region)
	}
	if script.String() != "Zzzz" {
		add(lang, script)
	}
	add(lang)
	return names
}
