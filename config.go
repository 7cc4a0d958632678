package mls

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/catalog"
	"github.com/mulanstring/mls/catalog/mocat"
	"github.com/mulanstring/mls/catalog/pocat"
	"github.com/mulanstring/mls/catalog/tomlcat"
	"github.com/mulanstring/mls/locale"
	"github.com/mulanstring/mls/template"
)

// Config describes locales, markers, the render error policy and where
// catalogs live. It is usually loaded from YAML with LoadConfig.
type Config struct {
	DefaultLocale string        `yaml:"default_locale" toml:"default_locale"`
	OnError       string        `yaml:"on_error" toml:"on_error"` // propagate or render_empty
	Delims        ast.Delims    `yaml:"delims" toml:"delims"`
	Catalog       CatalogConfig `yaml:"catalog" toml:"catalog"`
	Locales       []locale.Spec `yaml:"locales" toml:"locales"` // added to the built-in locales

	base string // directory relative catalog paths are resolved against
}

// CatalogConfig selects a catalog backend.
type CatalogConfig struct {
	Kind   string `yaml:"kind" toml:"kind"` // po, mo, toml or dummy
	Dir    string `yaml:"dir" toml:"dir"`
	Domain string `yaml:"domain" toml:"domain"` // mo only
}

// LoadConfig reads a config file, TOML when the name ends in .toml and YAML
// otherwise. Relative catalog directories are taken relative to the file.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	var cfg *Config
	if filepath.Ext(path) == ".toml" {
		cfg, err = ParseTOMLConfig(content)
	} else {
		cfg, err = ParseConfig(content)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}
	cfg.base = filepath.Dir(path)
	Logger.Debug().Str("path", path).Msg("loaded configuration")
	return cfg, nil
}

// ParseConfig decodes YAML config content.
func ParseConfig(content []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseTOMLConfig decodes TOML config content.
func ParseTOMLConfig(content []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := template.ParseErrorMode(c.OnError); err != nil {
		return err
	}
	switch c.Catalog.Kind {
	case "", "dummy", "po", "toml":
	case "mo":
		if c.Catalog.Domain == "" {
			return fmt.Errorf("catalog kind mo needs a domain")
		}
	default:
		return fmt.Errorf("unknown catalog kind %q (want po, mo, toml or dummy)", c.Catalog.Kind)
	}
	return nil
}

// Registry returns the built-in locales plus those the config defines. The
// default locale, when set, becomes the resolution fallback.
func (c *Config) Registry() (*locale.Registry, error) {
	var r = locale.Default()
	for _, spec := range c.Locales {
		if _, err := r.AddSpec(spec); err != nil {
			return nil, err
		}
	}
	if c.DefaultLocale != "" {
		if err := r.SetFallback(c.DefaultLocale); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Options returns the template options the config describes.
func (c *Config) Options() (template.Options, error) {
	mode, err := template.ParseErrorMode(c.OnError)
	if err != nil {
		return template.Options{}, err
	}
	return template.Options{Delims: c.Delims.OrDefault(), OnError: mode}, nil
}

// Provider opens the configured catalog backend.
func (c *Config) Provider() (catalog.Provider, error) {
	switch c.Catalog.Kind {
	case "po":
		return pocat.Dir(c.dir())
	case "mo":
		return mocat.New(c.Catalog.Domain, c.dir()), nil
	case "toml":
		return tomlcat.Dir(c.dir(), c.DefaultLocale)
	}
	return catalog.Dummy{}, nil
}

// Translator returns a Translator for the locale best matching name, or for
// the default locale when name is empty.
func (c *Config) Translator(name string) (Translator, error) {
	reg, err := c.Registry()
	if err != nil {
		return Translator{}, err
	}
	opts, err := c.Options()
	if err != nil {
		return Translator{}, err
	}
	prov, err := c.Provider()
	if err != nil {
		return Translator{}, err
	}
	if name == "" {
		name = c.DefaultLocale
	}
	return NewTranslator(prov, reg, name, opts)
}

// Bundle returns a bundle over the configured PO directory, watching its
// files when watch is set. Other catalog kinds yield an empty bundle.
func (c *Config) Bundle(watch bool) (*Bundle, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	var b = NewBundle().WithLocales(reg).WithOptions(opts).WatchFiles(watch)
	if c.Catalog.Kind == "po" {
		b.AddCatalogDir(c.dir())
	}
	return b, nil
}

func (c *Config) dir() string {
	if filepath.IsAbs(c.Catalog.Dir) || c.base == "" {
		return c.Catalog.Dir
	}
	return filepath.Join(c.base, c.Catalog.Dir)
}
