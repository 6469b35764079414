package solr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedBag(t *testing.T) *expiscor.Bag {
	t.Helper()
	bag := articleBag(t)
	bag.FieldByName("id").SetValue("doc-1")
	bag.FieldByName("article_title").SetValue("Go & Tell")
	tags := bag.FieldByName("tags")
	tags.AddValue("news")
	tags.AddValue("tech")
	return bag
}

func TestUpdateWriterAdd(t *testing.T) {
	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(feedBag(t), false, 1))
	require.NoError(t, uw.WriteTrailer())

	want := `<?xml version="1.0" encoding="UTF-8"?>
<add>
  <doc>
    <field name="id">doc-1</field>
    <field name="article_title">Go &amp; Tell</field>
    <field name="tags">news</field>
    <field name="tags">tech</field>
  </doc>
</add>
`
	assert.Equal(t, want, buf.String())
}

func TestUpdateWriterUpdateMode(t *testing.T) {
	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpUpdate, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(feedBag(t), true, 1))
	require.NoError(t, uw.WriteTrailer())

	out := buf.String()
	// the identity field never carries the partial-update directive
	assert.Contains(t, out, `<field name="id">doc-1</field>`)
	assert.NotContains(t, out, `<field name="id" update=`)
	// every other assigned value does, one element per value
	assert.Contains(t, out, `<field name="article_title" update="set">Go &amp; Tell</field>`)
	assert.Contains(t, out, `<field name="tags" update="set">news</field>`)
	assert.Contains(t, out, `<field name="tags" update="set">tech</field>`)
}

func TestUpdateWriterDeleteCarriesOnlyKey(t *testing.T) {
	bag := feedBag(t)

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpDelete, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(bag, false, 1))
	require.NoError(t, uw.WriteTrailer())

	want := `<?xml version="1.0" encoding="UTF-8"?>
<delete>
  <doc>
    <field name="id">doc-1</field>
  </doc>
</delete>
`
	assert.Equal(t, want, buf.String())
}

func TestUpdateWriterDeleteWithoutKey(t *testing.T) {
	bag := expiscor.NewBag()
	bag.MustAdd(expiscor.NewField("title", expiscor.Text)).SetValue("x")

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpDelete, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(bag, false, 1))
	require.NoError(t, uw.WriteTrailer())

	// no key, nothing to delete by: the doc element stays empty
	assert.NotContains(t, buf.String(), "<field")
}

func TestUpdateWriterSkipRules(t *testing.T) {
	bag := feedBag(t)
	hidden := expiscor.NewField("internal_rank", expiscor.Integer)
	hidden.SetFlag(expiscor.FeatureHidden, true)
	hidden.SetInt(9)
	bag.MustAdd(hidden)

	empty := bag.FieldByName("tags")
	empty.ClearValues()
	empty.AddValue("")
	empty.AddValue("kept")

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(bag, false, 1))
	require.NoError(t, uw.WriteTrailer())

	out := buf.String()
	assert.NotContains(t, out, "internal_rank", "hidden fields never emit")
	assert.NotContains(t, out, "created_at", "unassigned fields never emit")
	// an empty value vanishes without leaving an empty element
	assert.NotContains(t, out, `<field name="tags"></field>`)
	assert.Contains(t, out, `<field name="tags">kept</field>`)
}

func TestUpdateWriterDateCanonicalization(t *testing.T) {
	bag := feedBag(t)
	created := bag.FieldByName("created_at")

	cases := map[string]string{
		"2024-03-15T10:30:00Z":      "2024-03-15T10:30:00Z",
		"2024-03-15T12:30:00+02:00": "2024-03-15T10:30:00Z",
		"2024-03-15 10:30:00":       "2024-03-15T10:30:00Z",
		"2024-03-15":                "2024-03-15T00:00:00Z",
		"not a date":                "not a date",
	}
	for raw, want := range cases {
		created.SetValue(raw)

		var buf bytes.Buffer
		uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
		require.NoError(t, uw.WriteHeader())
		require.NoError(t, uw.WriteBag(bag, false, 1))
		require.NoError(t, uw.WriteTrailer())

		assert.Contains(t, buf.String(), `<field name="created_at">`+want+`</field>`,
			"raw value %q", raw)
	}
}

func TestUpdateWriterValidityMarker(t *testing.T) {
	bag := feedBag(t)
	bag.FieldByName("id").ClearValues()

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(bag, false, 1))
	require.NoError(t, uw.WriteTrailer())

	out := buf.String()
	// the doc still emits; the failure is advisory
	assert.Contains(t, out, "<!-- field set invalid:")
	assert.Contains(t, out, `<field name="article_title">`)
}

func TestUpdateWriterChildren(t *testing.T) {
	doc := expiscor.NewDocument("order")
	doc.Bag = feedBag(t)

	line := expiscor.NewBag()
	line.MustAdd(expiscor.NewField("sku", expiscor.Text)).SetValue("A-100")
	doc.AddRelationship("line_item", line)
	doc.AddRelationship("empty", expiscor.NewBag())

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	uw.IncludeChildren(true)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteDocument(doc, false, 1))
	require.NoError(t, uw.WriteTrailer())

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "<doc>"), "one parent, one non-empty child")
	assert.Contains(t, out, `<field name="sku">A-100</field>`)

	// toggled off, the same document emits flat
	buf.Reset()
	uw = solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteDocument(doc, false, 1))
	require.NoError(t, uw.WriteTrailer())
	assert.Equal(t, 1, strings.Count(buf.String(), "<doc>"))
}

func TestUpdateWriterTable(t *testing.T) {
	tbl := expiscor.NewTable("articles", articleBag(t))
	require.NoError(t, tbl.AddRow("doc-1", "First", "news", "", ""))
	require.NoError(t, tbl.AddRow("doc-2", "Second", "", "", "3"))

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteTable(tbl, false, 1))
	require.NoError(t, uw.WriteTrailer())

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "<doc>"))
	first := strings.Index(out, "doc-1")
	second := strings.Index(out, "doc-2")
	assert.True(t, first >= 0 && second > first, "rows emit in order")
	assert.Contains(t, out, `<field name="view_count">3</field>`)
}

func TestUpdateWriterDirectives(t *testing.T) {
	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteCommit())
	require.NoError(t, uw.WriteOptimize())
	require.NoError(t, uw.WriteCommit())
	require.NoError(t, uw.WriteTrailer())

	want := `<?xml version="1.0" encoding="UTF-8"?>
<add>
  <commit/>
  <optimize/>
  <commit/>
</add>
`
	assert.Equal(t, want, buf.String())
}

func TestUpdateWriterClosedIsAbsorbing(t *testing.T) {
	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.Close())
	require.NoError(t, uw.Close())

	// every call after Close is a guarded no-op
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(feedBag(t), false, 1))
	require.NoError(t, uw.WriteCommit())
	require.NoError(t, uw.WriteTrailer())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "</add>"), "one trailer, ever")
	assert.Equal(t, 1, strings.Count(out, "<?xml"))
	assert.NotContains(t, out, "<doc>")
}

func TestUpdateWriterEscapesFieldNames(t *testing.T) {
	bag := expiscor.NewBag()
	odd := expiscor.NewField(`a&b"c`, expiscor.Text)
	odd.SetValue("v")
	bag.MustAdd(odd)

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpUpdate, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(bag, true, 1))
	require.NoError(t, uw.WriteTrailer())

	// attribute escaping, not Go-string quoting
	assert.Contains(t, buf.String(), `<field name="a&amp;b&quot;c" update="set">v</field>`)
	assert.NotContains(t, buf.String(), `\"`)
}

func TestUpdateWriterLazyHeader(t *testing.T) {
	// content written before an explicit header still opens the message
	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteBag(feedBag(t), false, 1))
	require.NoError(t, uw.WriteCommit())
	require.NoError(t, uw.Close())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"), "prolog first: %q", out)
	assert.Equal(t, 1, strings.Count(out, "<add>"))
	assert.Equal(t, 1, strings.Count(out, "</add>"))
	docAt := strings.Index(out, "<doc>")
	rootAt := strings.Index(out, "<add>")
	assert.True(t, rootAt >= 0 && docAt > rootAt, "doc inside the root element")

	// a writer closed without content still emits a well-formed empty message
	buf.Reset()
	uw = solr.NewUpdateWriter(solr.OpDelete, &buf)
	require.NoError(t, uw.Close())
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<delete>\n</delete>\n", buf.String())
}

func TestUpdateWriterContentEscaping(t *testing.T) {
	bag := expiscor.NewBag()
	bag.MustAdd(expiscor.NewField("id", expiscor.Text)).SetValue("doc-1")
	body := expiscor.NewField("body", expiscor.Text)
	body.SetFlag(expiscor.FeatureContent, true)
	body.SetValue("a<b & c\x01d")
	bag.MustAdd(body)

	var buf bytes.Buffer
	uw := solr.NewUpdateWriter(solr.OpAdd, &buf)
	require.NoError(t, uw.WriteHeader())
	require.NoError(t, uw.WriteBag(bag, false, 1))
	require.NoError(t, uw.WriteTrailer())

	// illegal control characters are dropped, markup is escaped
	assert.Contains(t, buf.String(), `<field name="body">a&lt;b &amp; cd</field>`)
}
