package template

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/errortypes"
	"github.com/mulanstring/mls/locale"
	"github.com/mulanstring/mls/parse"
)

// builtinFunc describes one function code: the argument shapes it accepts
// and how to turn a tag into an element.
type builtinFunc struct {
	Build  func(b *builder, node *ast.TagNode) element
	Shapes []ast.Shape
}

// builtinFuncs is the fixed function set.
var builtinFuncs = map[string]builtinFunc{
	"SG": {buildGenderSet, []ast.Shape{ast.SingleArg}},
	"G":  {buildGenderWrite, []ast.Shape{ast.ListArg, ast.MapArg}},
	"C":  {buildCase, []ast.Shape{ast.SingleArg, ast.ListArg, ast.MapArg}},
	"P":  {buildPluralWrite, []ast.Shape{ast.ListArg, ast.MapArg}},
	"I":  {buildIntegerFormat, []ast.Shape{ast.SingleArg}},
	"R":  {buildRealFormat, []ast.Shape{ast.ListArg, ast.MapArg}},
}

// builder turns the parsed tags of one template into elements.
type builder struct {
	tmpl *Template
	node ast.Node // current node, for errors
}

// build compiles the parse tree. Any failing tag aborts the whole template.
func (t *Template) build() (err error) {
	var b = &builder{tmpl: t}
	defer b.recover(&err)
	var elems = make([]element, 0, len(t.tree.Nodes))
	for _, node := range t.tree.Nodes {
		b.node = node
		switch node := node.(type) {
		case *ast.RawTextNode:
			elems = append(elems, &textElem{node.Pos, node.Text})
		case *ast.TagNode:
			if el := b.tag(node); el != nil {
				elems = append(elems, el)
			}
		default:
			b.errorf(errortypes.ErrMalformedTemplate, "unexpected node %T", node)
		}
	}
	t.elems = elems
	return nil
}

// tag maps one tag to an element. It returns nil for tags that only affect
// the template itself, such as SG.
func (b *builder) tag(node *ast.TagNode) element {
	if node.Code == "" {
		return &varPut{node.Pos, node.Var}
	}
	fn, ok := builtinFuncs[node.Code]
	if !ok {
		b.errorf(errortypes.ErrUnknownFunction, "unknown function %q", node.Code)
	}
	var shape = ast.ShapeOf(node.Args)
	if !hasShape(fn.Shapes, shape) {
		b.errorf(errortypes.ErrMalformedTemplate, "function %s does not take %s arguments", node.Code, shape)
	}
	return fn.Build(b, node)
}

func hasShape(shapes []ast.Shape, shape ast.Shape) bool {
	for _, s := range shapes {
		if s == shape {
			return true
		}
	}
	return false
}

func (b *builder) requireVar(node *ast.TagNode) {
	if node.Var == "" {
		b.errorf(errortypes.ErrMalformedTemplate, "function %s requires a variable", node.Code)
	}
}

func (b *builder) forbidVar(node *ast.TagNode) {
	if node.Var != "" {
		b.errorf(errortypes.ErrMalformedTemplate, "function %s does not take a variable, found %q", node.Code, node.Var)
	}
}

// forms maps a list or map payload to output text keyed by label. List
// items are matched to labels by position and must match them in number.
func (b *builder) forms(node *ast.TagNode, what string, labels []string) map[string]string {
	switch args := node.Args.(type) {
	case ast.List:
		if len(args.Items) != len(labels) {
			b.errorf(errortypes.ErrMalformedTemplate, "%s takes %d %s forms for locale %s (%s), found %d",
				node.Code, len(labels), what, b.tmpl.loc.Name(), strings.Join(labels, ","), len(args.Items))
		}
		var out = make(map[string]string, len(labels))
		for i, label := range labels {
			out[label] = args.Items[i]
		}
		return out
	case *ast.Map:
		var out = make(map[string]string, len(args.Keys))
		for _, k := range args.Keys {
			out[k] = args.Entries[k]
		}
		return out
	}
	b.errorf(errortypes.ErrMalformedTemplate, "%s requires a list or map of %s forms", node.Code, what)
	return nil
}

// SG: %{+SG=m}%
func buildGenderSet(b *builder, node *ast.TagNode) element {
	b.forbidVar(node)
	b.tmpl.gender = node.Args.(ast.Single).Value
	return nil
}

// G: %{person!G:y,a,e}% or %{person!G m={y} f={a}}%
func buildGenderWrite(b *builder, node *ast.TagNode) element {
	b.requireVar(node)
	return &genderWrite{node.Pos, node.Var, b.forms(node, "gender", b.tmpl.loc.Genders())}
}

// C: %{obj!C=gen}% sets the case of a nested template;
// %{+C:,u,owi,,em,u,ie}% writes the form for the current case.
func buildCase(b *builder, node *ast.TagNode) element {
	if single, ok := node.Args.(ast.Single); ok {
		b.requireVar(node)
		return &caseSet{node.Pos, node.Var, single.Value}
	}
	b.forbidVar(node)
	return &caseWrite{node.Pos, b.forms(node, "case", b.tmpl.loc.Cases())}
}

// P: %{num!P:,s}%
func buildPluralWrite(b *builder, node *ast.TagNode) element {
	b.requireVar(node)
	return &pluralWrite{node.Pos, node.Var, b.forms(node, "plural", b.tmpl.loc.Plurals())}
}

// I: %{num!I=grouped}%
func buildIntegerFormat(b *builder, node *ast.TagNode) element {
	b.requireVar(node)
	var name = node.Args.(ast.Single).Value
	return &integerFormat{node.Pos, node.Var, name, b.numberFormat(name)}
}

// R: %{num!R:grouped,3}% or %{num!R format={grouped} prec={3}}%
func buildRealFormat(b *builder, node *ast.TagNode) element {
	b.requireVar(node)
	var name, prec, hasPrec = "general", "", false
	switch args := node.Args.(type) {
	case ast.List:
		switch len(args.Items) {
		case 2:
			prec, hasPrec = args.Items[1], true
			fallthrough
		case 1:
			name = args.Items[0]
		default:
			b.errorf(errortypes.ErrMalformedTemplate, "R takes [format] or [format,precision], found %d items", len(args.Items))
		}
	case *ast.Map:
		for _, k := range args.Keys {
			switch k {
			case "format":
				name = args.Entries[k]
			case "prec":
				prec, hasPrec = args.Entries[k], true
			default:
				b.errorf(errortypes.ErrMalformedTemplate, "R does not take %q (want format or prec)", k)
			}
		}
	}
	var el = &realFormat{node.Pos, node.Var, name, b.numberFormat(name), -1}
	if hasPrec {
		el.prec = b.precision(prec)
	}
	return el
}

// precision parses a precision argument, which must be all decimal digits.
func (b *builder) precision(s string) int {
	if s == "" || strings.Trim(s, "0123456789") != "" {
		b.errorf(errortypes.ErrMalformedTemplate, "precision %q must be decimal digits", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > maxPrecision {
		b.errorf(errortypes.ErrMalformedTemplate, "precision %q out of range", s)
	}
	return n
}

const maxPrecision = 32

func (b *builder) numberFormat(name string) locale.NumberFormat {
	f, ok := b.tmpl.loc.Format(name)
	if !ok {
		b.errorf(errortypes.ErrMalformedTemplate, "locale %s has no number format %q (have %s)",
			b.tmpl.loc.Name(), name, strings.Join(b.tmpl.loc.FormatNames(), ","))
	}
	return f
}

// errorf formats the error and terminates processing.
func (b *builder) errorf(kind error, format string, args ...interface{}) {
	var pos ast.Pos
	if b.node != nil {
		pos = b.node.Position()
	}
	line, col := parse.Position(b.tmpl.text, pos)
	panic(errortypes.At(kind, b.tmpl.name, line, col, format, args...))
}

// recover is the handler that turns panics into returns from build.
func (b *builder) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	if err, ok := e.(error); ok {
		*errp = err
		return
	}
	*errp = fmt.Errorf("%v", e)
}
