package template

import (
	"math"
	"strings"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/data"
	"github.com/mulanstring/mls/errortypes"
	"github.com/mulanstring/mls/locale"
	"github.com/mulanstring/mls/parse"
)

// maxDepth bounds the chain of nested template renders.
const maxDepth = 64

// element is one compiled piece of a template. The set is closed; see
// (*state).eval.
type element interface {
	Position() ast.Pos
}

type (
	textElem struct {
		ast.Pos
		text string
	}
	varPut struct {
		ast.Pos
		name string
	}
	genderWrite struct {
		ast.Pos
		name  string
		forms map[string]string
	}
	caseSet struct {
		ast.Pos
		name  string
		label string
	}
	caseWrite struct {
		ast.Pos
		forms map[string]string
	}
	pluralWrite struct {
		ast.Pos
		name  string
		forms map[string]string
	}
	integerFormat struct {
		ast.Pos
		name       string
		formatName string
		format     locale.NumberFormat
	}
	realFormat struct {
		ast.Pos
		name       string
		formatName string
		format     locale.NumberFormat
		prec       int
	}
)

// state represents the state of one template render.
type state struct {
	tmpl    *Template
	context scope // bindings, then inherited pseudo-variables
	depth   int
	node    element // current element, for errors
}

// render renders t with the inherited pseudo-variables in overlay.
func (t *Template) render(overlay scope, depth int) (string, error) {
	var s = &state{
		tmpl:    t,
		context: append(scope{t.bindings}, overlay...),
		depth:   depth,
	}
	if depth > maxDepth {
		return "", s.errorf(errortypes.ErrNestingTooDeep, "nested templates exceed depth %d", maxDepth)
	}
	var b strings.Builder
	for _, el := range t.elems {
		out, err := s.eval(el)
		if err != nil {
			if t.opts.OnError != RenderEmpty {
				return "", err
			}
			Logger.Warn().Err(err).Str("template", t.name).Msg("render error, writing empty string")
			out = ""
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// eval produces the text of one element.
func (s *state) eval(el element) (string, error) {
	s.node = el
	switch el := el.(type) {
	case *textElem:
		return el.text, nil

	case *varPut:
		v, err := s.lookup(el.name)
		if err != nil {
			return "", err
		}
		switch v := v.(type) {
		case data.Text, data.Int, data.Real:
			return v.String(), nil
		case data.Template:
			return s.renderNested(el.name, v, nil)
		}
		return "", s.unsupported(el.name, v, "text, number or template")

	case *genderWrite:
		nested, err := s.nested(el.name)
		if err != nil {
			return "", err
		}
		var gender = nested.Nested.Gender()
		if gender == "" {
			return "", s.errorf(errortypes.ErrUnknownLabel, "template bound to %q has no gender", el.name)
		}
		return s.form(el.forms, gender, "gender")

	case *caseSet:
		nested, err := s.nested(el.name)
		if err != nil {
			return "", err
		}
		return s.renderNested(el.name, nested, map[string]data.Value{caseVar: data.Text(el.label)})

	case *caseWrite:
		v, ok := s.context.lookup(caseVar)
		if !ok {
			return "", nil
		}
		label, ok := v.(data.Text)
		if !ok {
			return "", s.unsupported(caseVar, v, "text")
		}
		return s.form(el.forms, string(label), "case")

	case *pluralWrite:
		n, err := s.integer(el.name)
		if err != nil {
			return "", err
		}
		switch {
		case n == math.MinInt64:
			n = math.MaxInt64
		case n < 0:
			n = -n
		}
		return s.form(el.forms, s.tmpl.loc.Plural(n), "plural")

	case *integerFormat:
		n, err := s.integer(el.name)
		if err != nil {
			return "", err
		}
		return el.format.FormatInteger(n), nil

	case *realFormat:
		v, err := s.lookup(el.name)
		if err != nil {
			return "", err
		}
		f, ok := data.Float(v)
		if !ok {
			return "", s.unsupported(el.name, v, "number")
		}
		return el.format.FormatReal(f, el.prec), nil
	}
	return "", s.errorf(errortypes.ErrUnknownFunction, "unknown element %T", el)
}

func (s *state) lookup(name string) (data.Value, error) {
	v, ok := s.context.lookup(name)
	if !ok {
		return nil, s.errorf(errortypes.ErrMissingBinding, "variable %q is not bound", name)
	}
	return v, nil
}

func (s *state) nested(name string) (data.Template, error) {
	v, err := s.lookup(name)
	if err != nil {
		return data.Template{}, err
	}
	t, ok := v.(data.Template)
	if !ok || nilNested(t.Nested) {
		return data.Template{}, s.unsupported(name, v, "template")
	}
	return t, nil
}

func (s *state) integer(name string) (int64, error) {
	v, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	n, ok := data.Integer(v)
	if !ok {
		return 0, s.unsupported(name, v, "number")
	}
	return n, nil
}

// renderNested renders a bound template, passing down the inherited
// pseudo-variables plus extra.
func (s *state) renderNested(name string, v data.Template, extra map[string]data.Value) (string, error) {
	if nilNested(v.Nested) {
		return "", s.unsupported(name, v, "template")
	}
	t, ok := v.Nested.(*Template)
	if !ok {
		return v.Nested.Render()
	}
	var overlay = s.context.overlay()
	if extra != nil {
		overlay = overlay.push(extra)
	}
	return t.render(overlay, s.depth+1)
}

// nilNested reports whether n is nil or wraps a nil *Template.
func nilNested(n data.Nested) bool {
	if n == nil {
		return true
	}
	t, ok := n.(*Template)
	return ok && t == nil
}

func (s *state) form(forms map[string]string, label, what string) (string, error) {
	out, ok := forms[label]
	if !ok {
		return "", s.errorf(errortypes.ErrUnknownLabel, "no form for %s %q", what, label)
	}
	return out, nil
}

func (s *state) unsupported(name string, v data.Value, want string) error {
	var kind = data.KindUnsupported
	if v != nil {
		kind = v.Kind()
	}
	return s.errorf(errortypes.ErrUnsupportedBindingType, "variable %q is %s, want %s", name, kind, want)
}

// errorf creates an error located at the current element.
func (s *state) errorf(kind error, format string, args ...interface{}) error {
	var pos ast.Pos
	if s.node != nil {
		pos = s.node.Position()
	}
	line, col := parse.Position(s.tmpl.text, pos)
	return errortypes.At(kind, s.tmpl.name, line, col, format, args...)
}
