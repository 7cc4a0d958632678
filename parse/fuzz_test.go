package parse

import (
	"testing"

	"github.com/mulanstring/mls/ast"
)

func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"simple string",
		"dobr%{person!G:y,a,e}% %{person}%",
		"%{+SG=m}%mąż",
		"%{num!R format={grouped} prec={3}}%",
		"a%{#c#}%b",
		"%{+NO}%",
		"prefix%{+C:}%",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		list, err := Parse("fuzz", input, ast.DefaultDelims)
		if err != nil {
			return
		}
		for _, node := range list.Nodes {
			tag, ok := node.(*ast.TagNode)
			if !ok {
				continue
			}
			if len(tag.Code) > 2 {
				t.Errorf("%q: function code %q longer than 2", input, tag.Code)
			}
			if tag.Code == "" && (tag.Var == "" || tag.Args != nil) {
				t.Errorf("%q: bare variable tag %#v", input, tag)
			}
		}
	})
}
