package pocat

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mulanstring/mls/catalog"
)

func TestDir(t *testing.T) {
	var prov, err = Dir("testdata")
	require.NoError(t, err)

	var tests = []struct {
		locale, msgid, expected string
	}{
		{"pl", "cat", "%{+SG=m}%%{+C nom={kot} gen={kota} acc={kota}}%"},
		{"pl_PL", "dog", "%{+SG=m}%%{+C nom={pies} gen={psa} acc={psa}}%"},
		{"pl-PL.UTF-8", "dog", "%{+SG=m}%%{+C nom={pies} gen={psa} acc={psa}}%"},
		{"pl_PL", "%{n!P:file,files}%", "%{n!I=grouped}% %{n!P:plik,pliki,plików}%"},
		{"pl_PL", "untranslated", "untranslated"},
		{"pl_PL", "missing", "missing"},
		{"en_US", "%{n!P:file,files}%", "%{n!I=grouped}% %{n!P:file,files}%"},
		{"en_US", "cat", "cat"},
		{"de_DE", "cat", "cat"},
	}
	for _, test := range tests {
		var actual = prov.Catalog(test.locale).Lookup("", test.msgid)
		assert.Equal(t, test.expected, actual, "%s: %s", test.locale, test.msgid)
	}
}

func TestCatalogNotFound(t *testing.T) {
	var prov, err = Dir("testdata")
	require.NoError(t, err)
	assert.Equal(t, catalog.Dummy{}, prov.Catalog("xx"))
	assert.Equal(t, catalog.Dummy{}, prov.Catalog(""))
}

func TestParseFile(t *testing.T) {
	var c, err = ParseFile("testdata/pl.po")
	require.NoError(t, err)
	assert.Equal(t, "pl", c.Locale())

	var msgs = c.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "%{n!P:file,files}%", msgs[0].Id)
	assert.Equal(t, "cat", msgs[2].Id)
	assert.Equal(t, []string{"views/post.go:12"}, msgs[2].References)
	assert.Equal(t, "untranslated", msgs[4].Id)
	assert.Equal(t, "", msgs[4].Str)
}

type mapOpener map[string]string

func (m mapOpener) Open(locale string) (io.ReadCloser, error) {
	s, ok := m[locale]
	if !ok {
		return nil, nil
	}
	return io.NopCloser(strings.NewReader(s)), nil
}

func TestLoadFallback(t *testing.T) {
	var opener = mapOpener{
		"sr_Latn": "msgid \"hi\"\nmsgstr \"zdravo\"\n",
	}
	var prov, err = Load(opener, []string{"sr_Latn_RS", "fr_FR"})
	require.NoError(t, err)
	assert.Equal(t, "zdravo", prov.Catalog("sr_Latn_RS").Lookup("", "hi"))
	assert.Equal(t, "hi", prov.Catalog("fr_FR").Lookup("", "hi"))
}

func TestFallbacks(t *testing.T) {
	var tests = []struct {
		locale   string
		expected []string
	}{
		{"en", []string{"en"}},
		{"en_US", []string{"en_US", "en"}},
		{"en-US", []string{"en_US", "en"}},
		{"ar_Arab", []string{"ar_Arab", "ar"}},
		{"ar_Arab_EG", []string{"ar_Arab_EG", "ar_Arab", "ar"}},
		{"", nil},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, fallbacks(test.locale), test.locale)
	}
}
