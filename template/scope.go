package template

import "github.com/mulanstring/mls/data"

// caseVar is the pseudo-variable a case-set passes to the nested template.
const caseVar = "__CASE__"

type scope []map[string]data.Value // a stack of variable scopes

// push returns a new scope with m as the deepest level.
func (s scope) push(m map[string]data.Value) scope {
	return append(s[:len(s):len(s)], m)
}

// lookup checks the variable scopes, deepest out, for the given key
func (s scope) lookup(k string) (data.Value, bool) {
	for i := range s {
		var elem = s[len(s)-i-1]
		if val, ok := elem[k]; ok {
			return val, true
		}
	}
	return nil, false
}

// overlay returns the pseudo-variable levels of s, without the template's
// own bindings at the bottom. These are inherited by nested templates.
func (s scope) overlay() scope {
	if len(s) <= 1 {
		return nil
	}
	return s[1:]
}
