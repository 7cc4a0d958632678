package parse

import (
	"strings"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/errortypes"
)

const commentMarker = '#'

// Segment is a piece of template text and its byte offset in the input.
type Segment struct {
	Pos  ast.Pos
	Text string
}

// Pieces is the result of splitting a template. Literals and tag bodies
// interleave: Literals[0], Tags[0], Literals[1], ..., so
// len(Literals) == len(Tags)+1. Comments do not appear in either list and
// the literals on both sides of a comment are joined.
type Pieces struct {
	Literals []Segment
	Tags     []Segment
}

// Split breaks text into literal segments and tag bodies without
// interpreting the tags. A tag start with no matching end is an error.
func Split(name, text string, d ast.Delims) (Pieces, error) {
	d = d.OrDefault()
	var (
		out    Pieces
		lit    strings.Builder
		litPos ast.Pos
		pos    int
	)
	for {
		i := strings.Index(text[pos:], d.TagStart)
		if i == -1 {
			lit.WriteString(text[pos:])
			break
		}
		lit.WriteString(text[pos : pos+i])

		start := pos + i
		bodyStart := start + len(d.TagStart)
		j := strings.Index(text[bodyStart:], d.TagEnd)
		if j == -1 {
			line, col := Position(text, ast.Pos(start))
			return Pieces{}, errortypes.At(errortypes.ErrMalformedTemplate, name, line, col,
				"unterminated tag: no %q after %q", d.TagEnd, d.TagStart)
		}
		body := text[bodyStart : bodyStart+j]
		pos = bodyStart + j + len(d.TagEnd)

		if len(body) > 0 && body[0] == commentMarker {
			if body[len(body)-1] != commentMarker {
				line, col := Position(text, ast.Pos(start))
				return Pieces{}, errortypes.At(errortypes.ErrMalformedTemplate, name, line, col,
					"unterminated comment: expected %q before %q", commentMarker, d.TagEnd)
			}
			continue
		}

		out.Literals = append(out.Literals, Segment{litPos, lit.String()})
		out.Tags = append(out.Tags, Segment{ast.Pos(bodyStart), body})
		lit.Reset()
		litPos = ast.Pos(pos)
	}
	out.Literals = append(out.Literals, Segment{litPos, lit.String()})
	return out, nil
}

// Position reports the 1-based line and column of pos in text.
func Position(text string, pos ast.Pos) (line, col int) {
	if int(pos) > len(text) {
		pos = ast.Pos(len(text))
	}
	line = 1 + strings.Count(text[:pos], "\n")
	col = int(pos) - strings.LastIndex(text[:pos], "\n")
	return line, col
}
