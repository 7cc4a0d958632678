// Package tomlcat provides a catalog.Provider over go-i18n message files
// written in TOML, one file per language:
//
//	<dir>/active.pl.toml
//	<dir>/active.en.toml
//
// Each message's "other" text is the template. Plural forms are expressed
// inside the template with P tags, so go-i18n's own plural categories are
// not used.
package tomlcat

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/mulanstring/mls/catalog"
	"github.com/mulanstring/mls/locale"
)

// Provider serves catalogs from a go-i18n bundle.
type Provider struct {
	bundle *i18n.Bundle
}

var _ catalog.Provider = (*Provider)(nil)

// New returns an empty provider whose untranslated lookups fall back to
// defaultLocale.
func New(defaultLocale string) *Provider {
	tag, err := language.Parse(hyphen(defaultLocale))
	if err != nil {
		tag = language.English
	}
	var bundle = i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &Provider{bundle}
}

// Dir loads every *.toml file in dir.
func Dir(dir, defaultLocale string) (*Provider, error) {
	var p = New(defaultLocale)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, fi := range files {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".toml") {
			continue
		}
		if err := p.LoadFile(filepath.Join(dir, fi.Name())); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// LoadFile adds a message file. The language is taken from the file name.
func (p *Provider) LoadFile(path string) error {
	_, err := p.bundle.LoadMessageFile(path)
	return err
}

// AddMessages adds templates for a locale directly, keyed by message id.
func (p *Provider) AddMessages(loc string, messages map[string]string) error {
	tag, err := language.Parse(hyphen(loc))
	if err != nil {
		return err
	}
	var msgs = make([]*i18n.Message, 0, len(messages))
	for id, other := range messages {
		msgs = append(msgs, &i18n.Message{ID: id, Other: other})
	}
	return p.bundle.AddMessages(tag, msgs...)
}

// Catalog returns a catalog for loc, matched against the loaded languages.
func (p *Provider) Catalog(loc string) catalog.Catalog {
	return localizer{i18n.NewLocalizer(p.bundle, hyphen(loc))}
}

type localizer struct {
	l *i18n.Localizer
}

// Lookup ignores domain; a message file holds a single domain.
func (c localizer) Lookup(domain, msgid string) string {
	msg, err := c.l.Localize(&i18n.LocalizeConfig{MessageID: msgid})
	if err != nil || msg == "" {
		return msgid
	}
	return msg
}

func hyphen(loc string) string {
	return strings.Replace(locale.Normalize(loc), "_", "-", -1)
}
