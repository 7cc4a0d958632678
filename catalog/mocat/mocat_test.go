package mocat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	var prov = New("app", "testdata", "units")

	var tests = []struct {
		locale, domain, msgid, expected string
	}{
		{"pl_PL", "", "cat", "%{+SG=m}%%{+C nom={kot} acc={kota}}%"},
		{"pl_PL.UTF-8", "app", "%{n!P:file,files}%", "%{n!P:plik,pliki,plików}%"},
		{"pl-PL", "units", "km", "%{d!R:grouped,1}% km"},
		{"pl_PL", "", "dog", "dog"},
		{"pl_PL", "nosuch", "cat", "cat"},
		{"en_US", "", "cat", "%{+SG=n}%cat"},
		{"de_DE", "", "cat", "cat"},
	}
	for _, test := range tests {
		var actual = prov.Catalog(test.locale).Lookup(test.domain, test.msgid)
		assert.Equal(t, test.expected, actual, "%s/%s: %s", test.locale, test.domain, test.msgid)
	}
}

func TestCatalogCached(t *testing.T) {
	var prov = New("app", "testdata")
	assert.Same(t, prov.Catalog("pl_PL"), prov.Catalog("pl_PL.UTF-8"))
}
