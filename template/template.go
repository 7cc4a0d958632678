// Package template compiles template strings into renderable templates for a
// locale and renders them against variable bindings.
package template

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/data"
	"github.com/mulanstring/mls/locale"
	"github.com/mulanstring/mls/parse"
)

// Logger receives render errors that are dropped under the RenderEmpty mode.
var Logger = zerolog.New(zerolog.ConsoleWriter{
	Out:     os.Stderr,
	NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
}).With().Timestamp().Str("sys", "mls").Logger()

// ErrorMode selects what happens when an element fails to render.
type ErrorMode int

const (
	// Propagate stops rendering and returns the first error.
	Propagate ErrorMode = iota

	// RenderEmpty replaces the failing element with "" and logs the error.
	RenderEmpty
)

// ParseErrorMode converts a configuration string into an ErrorMode.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "", "propagate":
		return Propagate, nil
	case "render_empty", "empty":
		return RenderEmpty, nil
	}
	return Propagate, fmt.Errorf("unknown error mode %q (want propagate or render_empty)", s)
}

func (m ErrorMode) String() string {
	if m == RenderEmpty {
		return "render_empty"
	}
	return "propagate"
}

// Options control how templates are parsed and rendered.
type Options struct {
	Delims  ast.Delims // tag and map value markers; empty fields take the defaults
	OnError ErrorMode  // render error policy; parse errors are always returned
}

// Template is a compiled template string together with its variable
// bindings. The compiled elements never change; bindings persist across
// renders until replaced or cleared with Reset.
//
// A Template is not safe for concurrent use. Use Clone to get independent
// copies.
type Template struct {
	name     string
	text     string
	loc      *locale.Locale
	opts     Options
	tree     *ast.ListNode
	elems    []element
	gender   string
	bindings map[string]data.Value
}

var _ data.Nested = (*Template)(nil)

// New parses text into a template for the given locale. name identifies the
// template in error messages, usually the message id.
func New(name, text string, loc *locale.Locale, opts Options) (*Template, error) {
	if loc == nil {
		return nil, fmt.Errorf("template %s: no locale", name)
	}
	opts.Delims = opts.Delims.OrDefault()
	tree, err := parse.Parse(name, text, opts.Delims)
	if err != nil {
		return nil, err
	}
	var t = &Template{
		name:     name,
		text:     text,
		loc:      loc,
		opts:     opts,
		tree:     tree,
		bindings: make(map[string]data.Value),
	}
	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

// Must is a helper that wraps a call to a function returning (*Template, error)
// and panics if the error is non-nil.
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Name() string           { return t.name }
func (t *Template) Locale() *locale.Locale { return t.loc }
func (t *Template) Options() Options       { return t.opts }

// Gender returns the gender tag set by a %{+SG=...}% tag, or "".
func (t *Template) Gender() string { return t.gender }

// Source reconstructs the template text, without comments.
func (t *Template) Source() string {
	return t.tree.Format(t.opts.Delims)
}

// Vars returns the names of the variables the template reads, sorted.
func (t *Template) Vars() []string {
	var seen = make(map[string]bool)
	for _, n := range t.tree.Nodes {
		if tag, ok := n.(*ast.TagNode); ok && tag.Var != "" {
			seen[tag.Var] = true
		}
	}
	var names = make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply binds a Go value to a variable, replacing any previous binding.
// Strings, integers, floats and templates are supported; see data.New.
func (t *Template) Apply(name string, value interface{}) *Template {
	return t.Set(name, data.New(value))
}

// Set binds a value to a variable, replacing any previous binding.
func (t *Template) Set(name string, value data.Value) *Template {
	t.bindings[name] = value
	return t
}

// Lookup returns the value bound to name.
func (t *Template) Lookup(name string) (data.Value, bool) {
	v, ok := t.bindings[name]
	return v, ok
}

// Reset clears all bindings.
func (t *Template) Reset() *Template {
	t.bindings = make(map[string]data.Value)
	return t
}

// Clone returns a copy of the template with its own bindings. The copy
// starts with the current bindings.
func (t *Template) Clone() *Template {
	var c = *t
	c.bindings = make(map[string]data.Value, len(t.bindings))
	for k, v := range t.bindings {
		c.bindings[k] = v
	}
	return &c
}

// Render renders the template with its current bindings.
func (t *Template) Render() (string, error) {
	var buf strings.Builder
	if err := t.Execute(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Execute renders the template to wr.
func (t *Template) Execute(wr io.Writer) error {
	out, err := t.render(nil, 0)
	if err != nil {
		return err
	}
	_, err = io.WriteString(wr, out)
	return err
}
