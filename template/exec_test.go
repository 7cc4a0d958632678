package template

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/rs/zerolog"

	"github.com/mulanstring/mls/ast"
	"github.com/mulanstring/mls/data"
	"github.com/mulanstring/mls/errortypes"
	"github.com/mulanstring/mls/locale"
)

type d map[string]interface{}

var locales = locale.Default()

func loc(name string) *locale.Locale {
	l, ok := locales.Lookup(name)
	if !ok {
		panic("no locale " + name)
	}
	return l
}

func mustNew(t *testing.T, text, locName string) *Template {
	t.Helper()
	tmpl, err := New("test", text, loc(locName), Options{})
	if err != nil {
		t.Fatalf("%q: %v", text, err)
	}
	return tmpl
}

type execTest struct {
	name   string
	locale string
	input  string
	data   d
	output string
	err    error // expected error kind, nil for success
}

func runExecTests(t *testing.T, tests []execTest) {
	t.Helper()
	for _, test := range tests {
		var locName = test.locale
		if locName == "" {
			locName = locale.EnglishUS
		}
		tmpl, err := New(test.name, test.input, loc(locName), Options{})
		if err != nil {
			t.Errorf("%s: parse error: %v", test.name, err)
			continue
		}
		for k, v := range test.data {
			tmpl.Apply(k, v)
		}
		out, err := tmpl.Render()
		switch {
		case test.err == nil && err != nil:
			t.Errorf("%s: unexpected error: %v", test.name, err)
		case test.err != nil && !errors.Is(err, test.err):
			t.Errorf("%s: expected %v, got %v", test.name, test.err, err)
		case test.err == nil && out != test.output:
			t.Errorf("%s: expected %q, got %q", test.name, test.output, out)
		}
	}
}

func TestBasicExec(t *testing.T) {
	runExecTests(t, []execTest{
		{name: "empty", input: "", output: ""},
		{name: "simple string", input: "simple string", output: "simple string"},
		{name: "comment", input: "a%{#c#}%b", output: "ab"},
		{name: "text var", input: "Hello %{name}%!", data: d{"name": "Rob"}, output: "Hello Rob!"},
		{name: "int var", input: "%{n}%", data: d{"n": -3}, output: "-3"},
		{name: "real var", input: "%{n}%", data: d{"n": 5.4}, output: "5.4"},
		{name: "large int not grouped", input: "%{n}%", data: d{"n": 1000000}, output: "1000000"},
		{name: "missing", input: "Hello %{name}%!", err: errortypes.ErrMissingBinding},
		{name: "unsupported", input: "%{flag}%", data: d{"flag": true}, err: errortypes.ErrUnsupportedBindingType},
		{name: "nil", input: "%{x}%", data: d{"x": nil}, err: errortypes.ErrUnsupportedBindingType},
		{name: "nil template", input: "%{x}%", data: d{"x": (*Template)(nil)}, err: errortypes.ErrUnsupportedBindingType},
		{name: "huge unsigned", input: "%{x}%", data: d{"x": uint64(math.MaxUint64)}, err: errortypes.ErrUnsupportedBindingType},
	})
}

func TestPluralExec(t *testing.T) {
	runExecTests(t, []execTest{
		{name: "one", input: "file%{num!P:,s}%", data: d{"num": 1}, output: "file"},
		{name: "zero", input: "file%{num!P:,s}%", data: d{"num": 0}, output: "files"},
		{name: "many", input: "file%{num!P:,s}%", data: d{"num": 5}, output: "files"},
		{name: "negative", input: "file%{num!P:,s}%", data: d{"num": -5}, output: "files"},
		{name: "negative one", input: "file%{num!P:,s}%", data: d{"num": -1}, output: "file"},
		{name: "real truncated", input: "file%{num!P:,s}%", data: d{"num": 5.4}, output: "files"},
		{name: "real one", input: "file%{num!P:,s}%", data: d{"num": 1.2}, output: "file"},
		{name: "map", input: "%{n!P one={dog} other={dogs}}%", data: d{"n": 3}, output: "dogs"},
		{name: "map missing label", input: "%{n!P one={dog}}%", data: d{"n": 3}, err: errortypes.ErrUnknownLabel},
		{name: "text binding", input: "file%{num!P:,s}%", data: d{"num": "5"}, err: errortypes.ErrUnsupportedBindingType},
		{name: "unbound", input: "file%{num!P:,s}%", err: errortypes.ErrMissingBinding},

		{name: "pl one", locale: locale.Polish, input: "%{n}% plik%{n!P:,i,ów}%", data: d{"n": 1}, output: "1 plik"},
		{name: "pl few", locale: locale.Polish, input: "%{n}% plik%{n!P:,i,ów}%", data: d{"n": 2}, output: "2 pliki"},
		{name: "pl other", locale: locale.Polish, input: "%{n}% plik%{n!P:,i,ów}%", data: d{"n": 5}, output: "5 plików"},
		{name: "pl teen", locale: locale.Polish, input: "%{n}% plik%{n!P:,i,ów}%", data: d{"n": 12}, output: "12 plików"},
		{name: "pl twenties", locale: locale.Polish, input: "%{n}% plik%{n!P:,i,ów}%", data: d{"n": 22}, output: "22 pliki"},
	})
}

func TestNumberFormatExec(t *testing.T) {
	runExecTests(t, []execTest{
		{name: "integer", input: "%{num!I=general}% %{num!I=grouped}%", data: d{"num": 1000}, output: "1000 1,000"},
		{name: "integer million", input: "%{num!I=grouped}%", data: d{"num": 1000000}, output: "1,000,000"},
		{name: "integer negative", input: "%{num!I=general}% %{num!I=grouped}%", data: d{"num": -1000000}, output: "-1000000 -1,000,000"},
		{name: "integer from real", input: "%{num!I=grouped}%", data: d{"num": 1234.9}, output: "1,234"},
		{name: "integer pl", locale: locale.Polish, input: "%{num!I=grouped}%", data: d{"num": 1000}, output: "1 000"},
		{name: "integer text", input: "%{num!I=grouped}%", data: d{"num": "1000"}, err: errortypes.ErrUnsupportedBindingType},
		{name: "real list", input: "%{num!R:general,3}% %{num!R:grouped,3}%", data: d{"num": 1000.1234}, output: "1000.123 1,000.123"},
		{name: "real map", input: "%{num!R prec={3}}% %{num!R format={general} prec={3}}% %{num!R format={grouped} prec={3}}%",
			data: d{"num": 1000.1234}, output: "1000.123 1000.123 1,000.123"},
		{name: "real shortest", input: "%{num!R:grouped}%", data: d{"num": 1000.5}, output: "1,000.5"},
		{name: "real from int", input: "%{num!R:grouped}%", data: d{"num": 1000}, output: "1,000"},
		{name: "real zero precision", input: "%{num!R:general,0}%", data: d{"num": 1000.9}, output: "1000"},
		{name: "real negative fraction", input: "%{num!R:general}%", data: d{"num": -0.25}, output: "-0.25"},
		{name: "real pl", locale: locale.Polish, input: "%{num!R format={grouped} prec={2}}%", data: d{"num": 1234.567}, output: "1 234,57"},
		{name: "real text", input: "%{num!R:general}%", data: d{"num": "x"}, err: errortypes.ErrUnsupportedBindingType},
		{name: "integer NaN", input: "%{num!I=grouped}%", data: d{"num": math.NaN()}, err: errortypes.ErrUnsupportedBindingType},
		{name: "integer Inf", input: "%{num!I=grouped}%", data: d{"num": math.Inf(-1)}, err: errortypes.ErrUnsupportedBindingType},
		{name: "integer out of range", input: "%{num!I=grouped}%", data: d{"num": 1e300}, err: errortypes.ErrUnsupportedBindingType},
		{name: "plural NaN", input: "file%{num!P:,s}%", data: d{"num": math.NaN()}, err: errortypes.ErrUnsupportedBindingType},
		{name: "plural huge unsigned", input: "file%{num!P:,s}%", data: d{"num": uint64(math.MaxUint64)}, err: errortypes.ErrUnsupportedBindingType},
	})
}

func TestGenderAgreement(t *testing.T) {
	var tests = []struct {
		person string
		output string
	}{
		{"%{+SG=m}%mąż", "dobry mąż"},
		{"%{+SG=f}%żona", "dobra żona"},
		{"%{+SG=n}%dziecko", "dobre dziecko"},
	}
	for _, test := range tests {
		var person = mustNew(t, test.person, locale.Polish)
		var tmpl = mustNew(t, "dobr%{person!G:y,a,e}% %{person}%", locale.Polish)
		out, err := tmpl.Apply("person", person).Render()
		if err != nil {
			t.Errorf("%s: %v", test.person, err)
			continue
		}
		if out != test.output {
			t.Errorf("%s: expected %q, got %q", test.person, test.output, out)
		}
	}

	var man = mustNew(t, "%{+SG=m}%on", locale.Polish)
	if man.Gender() != "m" {
		t.Errorf("expected gender m, got %q", man.Gender())
	}
	out, err := mustNew(t, "%{p!G m={przyszedł} f={przyszła}}%", locale.Polish).Apply("p", man).Render()
	if err != nil || out != "przyszedł" {
		t.Errorf("map form: got %q, %v", out, err)
	}
}

func TestGenderErrors(t *testing.T) {
	var tmpl = mustNew(t, "%{p!G m={on} f={ona}}%", locale.Polish)
	for _, test := range []struct {
		name  string
		value interface{}
		err   error
	}{
		{"no gender", mustNew(t, "ktoś", locale.Polish), errortypes.ErrUnknownLabel},
		{"neuter not in map", mustNew(t, "%{+SG=n}%ono", locale.Polish), errortypes.ErrUnknownLabel},
		{"text", "on", errortypes.ErrUnsupportedBindingType},
		{"nil template", (*Template)(nil), errortypes.ErrUnsupportedBindingType},
		{"nil template value", data.Template{Nested: (*Template)(nil)}, errortypes.ErrUnsupportedBindingType},
	} {
		_, err := tmpl.Apply("p", test.value).Render()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: expected %v, got %v", test.name, test.err, err)
		}
	}
}

func TestCaseAgreement(t *testing.T) {
	var house = mustNew(t, "dom%{+C:,u,owi,,em,u,ie}%", locale.Polish)
	var tests = []struct {
		label, output string
	}{
		{"nom", "To jest dom"},
		{"gen", "To jest domu"},
		{"dat", "To jest domowi"},
		{"acc", "To jest dom"},
		{"ins", "To jest domem"},
		{"loc", "To jest domu"},
		{"voc", "To jest domie"},
	}
	for _, test := range tests {
		var tmpl = mustNew(t, "To jest %{obj!C="+test.label+"}%", locale.Polish)
		out, err := tmpl.Apply("obj", house).Render()
		if err != nil {
			t.Errorf("%s: %v", test.label, err)
			continue
		}
		if out != test.output {
			t.Errorf("%s: expected %q, got %q", test.label, test.output, out)
		}
	}

	out, err := mustNew(t, "Hej %{obj!C=voc}%!", locale.Polish).Apply("obj", house).Render()
	if err != nil || out != "Hej domie!" {
		t.Errorf("vocative: got %q, %v", out, err)
	}

	// Rendering on its own has no case; the case-set did not leave one behind.
	out, err = house.Render()
	if err != nil || out != "dom" {
		t.Errorf("standalone: got %q, %v", out, err)
	}
	if _, ok := house.Lookup("__CASE__"); ok {
		t.Error("case-set mutated the nested template's bindings")
	}
}

func TestCaseErrors(t *testing.T) {
	var house = mustNew(t, "dom%{+C nom={} gen={u}}%", locale.Polish)
	_, err := mustNew(t, "%{obj!C=voc}%", locale.Polish).Apply("obj", house).Render()
	if !errors.Is(err, errortypes.ErrUnknownLabel) {
		t.Errorf("expected unknown label, got %v", err)
	}
	_, err = mustNew(t, "%{obj!C=gen}%", locale.Polish).Apply("obj", "dom").Render()
	if !errors.Is(err, errortypes.ErrUnsupportedBindingType) {
		t.Errorf("expected unsupported binding, got %v", err)
	}
	_, err = house.Clone().Apply("__CASE__", 3).Render()
	if !errors.Is(err, errortypes.ErrUnsupportedBindingType) {
		t.Errorf("expected unsupported binding for numeric case, got %v", err)
	}
	out, err := house.Clone().Apply("__CASE__", "gen").Render()
	if err != nil || out != "domu" {
		t.Errorf("explicit case binding: got %q, %v", out, err)
	}
}

func TestCasePropagatesThroughNesting(t *testing.T) {
	var house = mustNew(t, "dom%{+C:,u,owi,,em,u,ie}%", locale.Polish)
	var big = mustNew(t, "duż%{+C:y,ego,emu,y,ym,ym,y}% %{h}%", locale.Polish).Apply("h", house)
	var tmpl = mustNew(t, "Nie ma %{obj!C=gen}%.", locale.Polish).Apply("obj", big)
	out, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if out != "Nie ma dużego domu." {
		t.Errorf("expected %q, got %q", "Nie ma dużego domu.", out)
	}
}

func TestConstructionErrors(t *testing.T) {
	var tests = []struct {
		locale string
		input  string
		err    error
	}{
		{locale.Polish, "dobr%{person!G:y,a}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "dom%{+C:,u,owi}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "file%{num!P:,s,x}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "plik%{n!P:,i}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{+XY=a}%", errortypes.ErrUnknownFunction},
		{locale.EnglishUS, "%{+NO}%", errortypes.ErrUnknownFunction},
		{locale.EnglishUS, "%{+G}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!I=fancy}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!I:general}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R:general,x}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R:general,-1}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R prec={3a}}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R prec={}}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R:a,b,c}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R:,3}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R size={3}}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{num!R=general}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "%{+G:y,a,e}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "%{x!SG=m}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "%{+SG:m}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "%{x!C:,u,owi,,em,u,ie}%", errortypes.ErrMalformedTemplate},
		{locale.Polish, "%{+C=nom}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{+P:,s}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{}%", errortypes.ErrMalformedTemplate},
		{locale.EnglishUS, "%{+NM", errortypes.ErrMalformedTemplate},
	}
	for _, test := range tests {
		_, err := New("construct", test.input, loc(test.locale), Options{})
		if !errors.Is(err, test.err) {
			t.Errorf("%q: expected %v, got %v", test.input, test.err, err)
		}
	}

	if _, err := New("nil locale", "x", nil, Options{}); err == nil {
		t.Error("expected error for nil locale")
	}
}

func TestRenderEmpty(t *testing.T) {
	var saved = Logger
	Logger = zerolog.Nop()
	defer func() { Logger = saved }()

	tmpl, err := New("empty", "[%{a}%|%{n!P:,s}%|%{b}%]", loc(locale.EnglishUS), Options{OnError: RenderEmpty})
	if err != nil {
		t.Fatal(err)
	}
	out, err := tmpl.Apply("b", "ok").Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[||ok]" {
		t.Errorf("expected %q, got %q", "[||ok]", out)
	}

	// Parse errors are still returned.
	if _, err := New("bad", "%{", loc(locale.EnglishUS), Options{OnError: RenderEmpty}); err == nil {
		t.Error("expected parse error")
	}
}

func TestBindings(t *testing.T) {
	var tmpl = mustNew(t, "%{a}%-%{b}%", locale.EnglishUS)
	out, err := tmpl.Apply("a", 1).Apply("b", 2).Apply("a", "x").Render()
	if err != nil || out != "x-2" {
		t.Errorf("last write wins: got %q, %v", out, err)
	}

	// bindings persist across renders
	out, err = tmpl.Render()
	if err != nil || out != "x-2" {
		t.Errorf("second render: got %q, %v", out, err)
	}

	var clone = tmpl.Clone().Set("b", data.Text("y"))
	if out, _ := clone.Render(); out != "x-y" {
		t.Errorf("clone: got %q", out)
	}
	if out, _ := tmpl.Render(); out != "x-2" {
		t.Errorf("original changed by clone: got %q", out)
	}

	tmpl.Reset()
	if _, err := tmpl.Render(); !errors.Is(err, errortypes.ErrMissingBinding) {
		t.Errorf("expected missing binding after reset, got %v", err)
	}
}

func TestNestingTooDeep(t *testing.T) {
	var tmpl = mustNew(t, "(%{self}%)", locale.EnglishUS)
	tmpl.Apply("self", tmpl)
	if _, err := tmpl.Render(); !errors.Is(err, errortypes.ErrNestingTooDeep) {
		t.Errorf("expected nesting error, got %v", err)
	}
}

func TestErrorPosition(t *testing.T) {
	var tmpl = mustNew(t, "line one\nHello %{name}%", locale.EnglishUS)
	_, err := tmpl.Render()
	var fp = errortypes.ToErrFilePos(err)
	if fp == nil {
		t.Fatalf("expected positioned error, got %v", err)
	}
	if fp.File() != "test" || fp.Line() != 2 || fp.Col() != 9 {
		t.Errorf("expected test:2:9, got %s:%d:%d", fp.File(), fp.Line(), fp.Col())
	}
}

func TestSourceAndVars(t *testing.T) {
	var tmpl = mustNew(t, "%{+SG=f}%a%{#note#}%b %{n!P one={x} other={y}}% %{m}% %{n}%", locale.EnglishUS)
	if got, want := tmpl.Source(), "%{+SG=f}%ab %{n!P one={x} other={y}}% %{m}% %{n}%"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := strings.Join(tmpl.Vars(), ","); got != "m,n" {
		t.Errorf("unexpected vars %s", got)
	}
	if tmpl.Gender() != "f" {
		t.Errorf("unexpected gender %q", tmpl.Gender())
	}
}

func TestMultiline(t *testing.T) {
	var tmpl = mustNew(t, `Dear %{name}%,
%{#
  greeting body
#}%you have %{n}% new message%{n!P:,s}%.
Total: %{total!R format={grouped} prec={2}}%
`, locale.EnglishUS)
	out, err := tmpl.Apply("name", "Ann").Apply("n", 3).Apply("total", 12345.678).Render()
	if err != nil {
		t.Fatal(err)
	}
	var expected = "Dear Ann,\nyou have 3 new messages.\nTotal: 12,345.68\n"
	if out != expected {
		t.Errorf("did not get expected results:\n%v", diff.LineDiff(expected, out))
	}
}

func TestCustomDelims(t *testing.T) {
	tmpl, err := New("delims", "<<n>> file<<n!P one=[] other=[s]>>", loc(locale.EnglishUS), Options{
		Delims: ast.Delims{TagStart: "<<", TagEnd: ">>", InnerStart: "[", InnerEnd: "]"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out, err := tmpl.Apply("n", 2).Render(); err != nil || out != "2 files" {
		t.Errorf("got %q, %v", out, err)
	}
	if got, want := tmpl.Source(), "<<n>> file<<n!P one=[] other=[s]>>"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
