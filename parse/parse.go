// Package parse converts a template string into its in-memory representation (AST).
package parse

import (
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/errortypes"
)

const (
	eof          = -1
	noVarMarker  = "+"
	varFnDivider = "!"
	argDividers  = "=: " // searched in this order of appearance, first one wins
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Parse splits text into literals and tags and parses every tag body.
// The whole parse fails on the first malformed tag.
func Parse(name, text string, d ast.Delims) (*ast.ListNode, error) {
	d = d.OrDefault()
	pieces, err := Split(name, text, d)
	if err != nil {
		return nil, err
	}
	var list = &ast.ListNode{}
	for i, lit := range pieces.Literals {
		if lit.Text != "" || len(pieces.Tags) == 0 {
			list.Nodes = append(list.Nodes, &ast.RawTextNode{Pos: lit.Pos, Text: lit.Text})
		}
		if i == len(pieces.Tags) {
			break
		}
		node, err := parseTag(name, text, pieces.Tags[i], d)
		if err != nil {
			return nil, err
		}
		list.Nodes = append(list.Nodes, node)
	}
	return list, nil
}

// ParseTag parses a single tag body, the text between the tag markers.
func ParseTag(body string, d ast.Delims) (*ast.TagNode, error) {
	return parseTag("", body, Segment{0, body}, d.OrDefault())
}

func parseTag(name, text string, body Segment, d ast.Delims) (node *ast.TagNode, err error) {
	var p = &tagParser{
		name:   name,
		text:   text,
		base:   body.Pos,
		input:  body.Text,
		delims: d,
	}
	defer p.recover(&err)
	return p.tag(), nil
}

// tagParser is a cursor over one tag body.
type tagParser struct {
	name   string     // the name of the template; used only during errors.
	text   string     // the full template text; used only during errors.
	base   ast.Pos    // position of the tag body within text.
	input  string     // the tag body being scanned.
	pos    int        // current position in input.
	width  int        // width of last rune read from input.
	delims ast.Delims // markers for map values.
}

// tag:
//
//	"+" call | var "!" call | var
func (p *tagParser) tag() *ast.TagNode {
	var node = &ast.TagNode{Pos: p.base}
	if p.input == "" {
		p.errorf(errortypes.ErrMalformedTemplate, "empty tag")
	}
	switch {
	case p.acceptPrefix(noVarMarker):
		p.call(node)
	case strings.Contains(p.input, varFnDivider):
		var i = strings.Index(p.input, varFnDivider)
		node.Var = p.input[:i]
		p.checkName(node.Var, "variable")
		p.skip(i + len(varFnDivider))
		p.call(node)
	default:
		node.Var = p.input
		p.checkName(node.Var, "variable")
		p.skip(len(p.input))
	}
	return node
}

// call:
//
//	code | code "=" single | code ":" list | code " " map
func (p *tagParser) call(node *ast.TagNode) {
	var rest = p.rest()
	var div = strings.IndexAny(rest, argDividers)
	if div == -1 {
		node.Code = p.code(rest)
		p.skip(len(rest))
		return
	}
	if div != 1 && div != 2 {
		if div == 0 {
			p.errorf(errortypes.ErrMalformedTemplate, "missing function code before %q", rest[0])
		}
		p.errorf(errortypes.ErrMalformedTemplate, "function code %q must be 1 or 2 letters", rest[:div])
	}
	node.Code = p.code(rest[:div])
	p.skip(div)
	switch p.next() {
	case '=':
		node.Args = p.single()
	case ':':
		node.Args = p.list()
	case ' ':
		node.Args = p.mapArgs()
	}
}

func (p *tagParser) code(code string) string {
	switch {
	case code == "":
		p.errorf(errortypes.ErrMalformedTemplate, "missing function code")
	case len(code) > 2:
		p.errorf(errortypes.ErrMalformedTemplate, "function code %q must be 1 or 2 letters", code)
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(upperLetters, code[i]) < 0 {
			p.errorf(errortypes.ErrMalformedTemplate, "function code %q must be uppercase letters", code)
		}
	}
	return code
}

// single: "=" has just been read.
func (p *tagParser) single() ast.Args {
	var value = p.rest()
	if value == "" {
		p.errorf(errortypes.ErrMalformedTemplate, "missing value after '='")
	}
	p.skip(len(value))
	return ast.Single{Value: value}
}

// list: ":" has just been read. Items may be empty, the list itself may not.
func (p *tagParser) list() ast.Args {
	var value = p.rest()
	if value == "" {
		p.errorf(errortypes.ErrMalformedTemplate, "empty list after ':'")
	}
	p.skip(len(value))
	return ast.List{Items: strings.Split(value, ",")}
}

// mapArgs: " " has just been read.
//
//	(key "=" innerStart value innerEnd)+ separated by spaces
func (p *tagParser) mapArgs() ast.Args {
	var m = ast.NewMap()
	for {
		for p.accept(" ") {
		}
		if p.peek() == eof {
			break
		}
		var rest = p.rest()
		var eq = strings.IndexByte(rest, '=')
		if eq == -1 {
			p.errorf(errortypes.ErrMalformedTemplate, "expected key=%svalue%s, found %q",
				p.delims.InnerStart, p.delims.InnerEnd, rest)
		}
		var key = rest[:eq]
		if key == "" {
			p.errorf(errortypes.ErrMalformedTemplate, "missing key before '='")
		}
		p.checkName(key, "key")
		p.skip(eq + 1)
		if !p.acceptPrefix(p.delims.InnerStart) {
			p.errorf(errortypes.ErrMalformedTemplate, "value of %q must be enclosed in %s%s",
				key, p.delims.InnerStart, p.delims.InnerEnd)
		}
		var end = strings.Index(p.rest(), p.delims.InnerEnd)
		if end == -1 {
			p.errorf(errortypes.ErrMalformedTemplate, "unterminated value of %q: missing %q", key, p.delims.InnerEnd)
		}
		var value = p.rest()[:end]
		p.skip(end + len(p.delims.InnerEnd))
		if !m.Add(key, value) {
			p.errorf(errortypes.ErrMalformedTemplate, "duplicate key %q", key)
		}
		if r := p.peek(); r != ' ' && r != eof {
			p.errorf(errortypes.ErrMalformedTemplate, "unexpected %q after value of %q", r, key)
		}
	}
	if len(m.Keys) == 0 {
		p.errorf(errortypes.ErrMalformedTemplate, "empty argument map")
	}
	return m
}

// checkName rejects names containing whitespace or markers.
func (p *tagParser) checkName(name, what string) {
	if strings.ContainsAny(name, " \t\r\n") {
		p.errorf(errortypes.ErrMalformedTemplate, "%s name %q contains whitespace", what, name)
	}
	if strings.Contains(name, p.delims.TagStart) {
		p.errorf(errortypes.ErrMalformedTemplate, "%s name %q contains %q", what, name, p.delims.TagStart)
	}
}

// Cursor ---------------------------------------------------------------------

// next returns the next rune in the input.
func (p *tagParser) next() rune {
	if p.pos >= len(p.input) {
		p.width = 0
		return eof
	}
	var r rune
	r, p.width = utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += p.width
	return r
}

// peek returns but does not consume the next rune in the input.
func (p *tagParser) peek() rune {
	r := p.next()
	p.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (p *tagParser) backup() {
	p.pos -= p.width
	p.width = 0
}

// accept consumes the next rune if it's from the valid set.
func (p *tagParser) accept(valid string) bool {
	if r := p.next(); r != eof && strings.ContainsRune(valid, r) {
		return true
	}
	p.backup()
	return false
}

// acceptPrefix consumes prefix if the remaining input starts with it.
func (p *tagParser) acceptPrefix(prefix string) bool {
	if prefix == "" || !strings.HasPrefix(p.rest(), prefix) {
		return false
	}
	p.skip(len(prefix))
	return true
}

// rest returns the unconsumed input.
func (p *tagParser) rest() string {
	return p.input[p.pos:]
}

// skip advances n bytes, stopping at the end of input.
func (p *tagParser) skip(n int) {
	p.pos += n
	if p.pos > len(p.input) {
		p.pos = len(p.input)
	}
	p.width = 0
}

// errorf formats the error and terminates processing.
func (p *tagParser) errorf(kind error, format string, args ...interface{}) {
	var name, text = p.name, p.text
	if text == "" {
		text = p.input
	}
	line, col := Position(text, p.base+ast.Pos(p.pos))
	panic(errortypes.At(kind, name, line, col, format, args...))
}

// recover is the handler that turns panics into returns from the top level of Parse.
func (p *tagParser) recover(errp *error) {
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
