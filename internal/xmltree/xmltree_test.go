package xmltree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="utf-8"?>
<ComicInfo xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <Series>Saga &amp; Co</Series>
  <Number>1</Number>
  <Pages>
    <Page Image="0" Type="FrontCover"/>
    <Page Image="1"/>
  </Pages>
</ComicInfo>`

func TestParseKeepsOrderAndPrefixes(t *testing.T) {
	root, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "ComicInfo", root.Name)
	v, ok := root.Attr("xmlns:xsi")
	require.True(t, ok)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema-instance", v)
	assert.Equal(t, "Saga & Co", root.ChildText("Series"))
	assert.Equal(t, "1", root.ChildText("number"))

	pages := root.Child("Pages").All("Page")
	require.Len(t, pages, 2)
	typ, _ := pages[0].Attr("Type")
	assert.Equal(t, "FrontCover", typ)
	assert.Equal(t, []string{"Series", "Number", "Pages"}, names(root.Children))
}

func TestMarshalRoundTrip(t *testing.T) {
	root, err := Parse([]byte(sample))
	require.NoError(t, err)
	out, err := Marshal(root)
	require.NoError(t, err)
	text := string(out)
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, text, `<ComicInfo xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema">`)
	assert.Contains(t, text, "  <Series>Saga &amp; Co</Series>\n")
	assert.Contains(t, text, `    <Page Image="0" Type="FrontCover"/>`)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, root, again)
}

func TestParsePrefixedNames(t *testing.T) {
	doc := `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"><rdf:Description pdf:Keywords="a, b"/></rdf:RDF></x:xmpmeta>`
	root, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "x:xmpmeta", root.Name)
	assert.Equal(t, "xmpmeta", root.LocalName())
	desc := root.Child("RDF").Child("rdf:Description")
	require.NotNil(t, desc)
	kw, ok := desc.Attr("Keywords")
	require.True(t, ok)
	assert.Equal(t, "a, b", kw)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, doc := range []string{"", "not xml", "<a><b></a>", "<a>", "<a/><b/>"} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
	_, err := Parse([]byte("   "))
	assert.True(t, errors.Is(err, ErrNoRoot))
}

func TestMarshalEscapesAndKeepsNewlines(t *testing.T) {
	root := New("Root")
	root.SetAttr("note", `say "hi"`)
	root.AddText("Summary", "line one\nline <two>")
	assert.Nil(t, root.AddText("Empty", ""))
	out, err := Marshal(root)
	require.NoError(t, err)
	assert.Contains(t, string(out), `note="say &quot;hi&quot;"`)
	assert.Contains(t, string(out), "<Summary>line one\nline &lt;two&gt;</Summary>")
	assert.NotContains(t, string(out), "Empty")
}

func names(els []*Element) []string {
	out := make([]string, len(els))
	for i, e := range els {
		out[i] = e.Name
	}
	return out
}
