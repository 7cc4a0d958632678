// Package ast contains definitions for the in-memory representation of a
// parsed template: literal text interleaved with tags.
package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Node represents any singular piece of a template.  For example, a
// sequence of raw text or a tag.
type Node interface {
	String() string // String returns the source representation of this node.
	Position() Pos  // byte position of start of node in full original input string
}

// Pos represents a byte position in the original input text from which this
// template was parsed.  It is useful to construct helpful error messages.
type Pos int

// Position returns this position.  It is implemented as a method so that Nodes
// may embed a Pos and fulfill this part of the Node interface for free.
func (p Pos) Position() Pos {
	return p
}

// Delims are the markers that surround tags and map values.
type Delims struct {
	TagStart   string `yaml:"tag_start" toml:"tag_start"`
	TagEnd     string `yaml:"tag_end" toml:"tag_end"`
	InnerStart string `yaml:"inner_start" toml:"inner_start"`
	InnerEnd   string `yaml:"inner_end" toml:"inner_end"`
}

// DefaultDelims is the standard %{ }% / { } marker set.
var DefaultDelims = Delims{
	TagStart:   "%{",
	TagEnd:     "}%",
	InnerStart: "{",
	InnerEnd:   "}",
}

// OrDefault fills any empty marker from DefaultDelims.
func (d Delims) OrDefault() Delims {
	if d.TagStart == "" {
		d.TagStart = DefaultDelims.TagStart
	}
	if d.TagEnd == "" {
		d.TagEnd = DefaultDelims.TagEnd
	}
	if d.InnerStart == "" {
		d.InnerStart = DefaultDelims.InnerStart
	}
	if d.InnerEnd == "" {
		d.InnerEnd = DefaultDelims.InnerEnd
	}
	return d
}

// ListNode holds a sequence of nodes.
type ListNode struct {
	Pos
	Nodes []Node // The element nodes in lexical order.
}

func (l *ListNode) String() string {
	return l.Format(DefaultDelims)
}

// Format reconstructs the template source using the given markers.
func (l *ListNode) Format(d Delims) string {
	b := new(bytes.Buffer)
	for _, n := range l.Nodes {
		switch n := n.(type) {
		case *TagNode:
			b.WriteString(n.Format(d))
		default:
			fmt.Fprint(b, n)
		}
	}
	return b.String()
}

func (l *ListNode) Children() []Node {
	return l.Nodes
}

// RawTextNode is literal text between tags.
type RawTextNode struct {
	Pos
	Text string // The text; may span newlines.
}

func (t *RawTextNode) String() string {
	return t.Text
}

// TagNode is a single parsed tag: an optional variable, an optional
// function code and the argument payload.
//
//	%{name}%               Var="name"
//	%{+SG=m}%              Code="SG", Args=SingleArg
//	%{num!P:,s}%           Var="num", Code="P", Args=ListArg
//	%{num!R prec={3}}%     Var="num", Code="R", Args=*MapArg
type TagNode struct {
	Pos
	Var  string // variable name; may be empty when Code is set
	Code string // 1-2 uppercase letters, or empty for a bare variable
	Args Args   // nil when the tag carries no arguments
}

func (n *TagNode) String() string {
	return n.Format(DefaultDelims)
}

// Format reconstructs the tag source using the given markers.
func (n *TagNode) Format(d Delims) string {
	var b strings.Builder
	b.WriteString(d.TagStart)
	switch {
	case n.Code == "":
		b.WriteString(n.Var)
	case n.Var == "":
		b.WriteString("+" + n.Code)
	default:
		b.WriteString(n.Var + "!" + n.Code)
	}
	if n.Args != nil {
		b.WriteString(n.Args.Format(d))
	}
	b.WriteString(d.TagEnd)
	return b.String()
}

// Shape identifies how a tag's arguments were written.
type Shape int

const (
	NoArgs    Shape = iota
	SingleArg       // =value
	ListArg         // :a,b,c
	MapArg          //  key={value} key2={value}
)

func (s Shape) String() string {
	switch s {
	case SingleArg:
		return "single"
	case ListArg:
		return "list"
	case MapArg:
		return "map"
	}
	return "none"
}

// Args is the argument payload of a tag.
type Args interface {
	Shape() Shape
	Format(d Delims) string
}

// ShapeOf returns the shape of args, NoArgs for nil.
func ShapeOf(args Args) Shape {
	if args == nil {
		return NoArgs
	}
	return args.Shape()
}

// Single is a "=value" payload.
type Single struct {
	Value string
}

func (Single) Shape() Shape { return SingleArg }

func (a Single) Format(Delims) string {
	return "=" + a.Value
}

// List is a ":a,b,c" payload. Items may be empty strings.
type List struct {
	Items []string
}

func (List) Shape() Shape { return ListArg }

func (a List) Format(Delims) string {
	return ":" + strings.Join(a.Items, ",")
}

// Map is a " key={value} ..." payload. Keys keeps source order.
type Map struct {
	Keys    []string
	Entries map[string]string
}

// NewMap returns an empty map payload.
func NewMap() *Map {
	return &Map{Entries: make(map[string]string)}
}

func (*Map) Shape() Shape { return MapArg }

// Add appends an entry. It reports false if key is already present.
func (a *Map) Add(key, value string) bool {
	if _, ok := a.Entries[key]; ok {
		return false
	}
	a.Keys = append(a.Keys, key)
	a.Entries[key] = value
	return true
}

// Get returns the value for key.
func (a *Map) Get(key string) (string, bool) {
	v, ok := a.Entries[key]
	return v, ok
}

func (a *Map) Format(d Delims) string {
	var b strings.Builder
	for _, k := range a.Keys {
		b.WriteString(" " + k + "=" + d.InnerStart + a.Entries[k] + d.InnerEnd)
	}
	return b.String()
}
