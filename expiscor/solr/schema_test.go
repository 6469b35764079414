package solr_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/solr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleBag(t *testing.T) *expiscor.Bag {
	t.Helper()

	bag := expiscor.NewBag()
	id := expiscor.NewField("id", expiscor.Text)
	id.MarkPrimaryKey()
	id.SetFlag(expiscor.FeatureRequired, true)
	bag.MustAdd(id)
	bag.MustAdd(expiscor.NewField("article_title", expiscor.Text))
	bag.MustAdd(expiscor.NewMultiField("tags", expiscor.Text))
	bag.MustAdd(expiscor.NewField("created_at", expiscor.DateTime))
	bag.MustAdd(expiscor.NewField("view_count", expiscor.Integer))
	return bag
}

func TestSchemaSave(t *testing.T) {
	codec := solr.NewSchemaCodec()
	var buf bytes.Buffer
	require.NoError(t, codec.Save(&buf, articleBag(t), "fields", 0))

	want := `<fields>
  <field name="text" type="text_en" indexed="true" stored="false" multiValued="true"/>
  <field name="id" type="string" indexed="true" stored="true" required="true"/>
  <field name="article_title" type="text_en" indexed="true" stored="true"/>
  <field name="tags" type="string" indexed="true" stored="true" multiValued="true"/>
  <field name="created_at" type="date" indexed="true" stored="true"/>
  <field name="view_count" type="int" indexed="true" stored="true"/>
  <field name="_version_" type="long" indexed="true" stored="true"/>
</fields>
<uniqueKey>id</uniqueKey>
<copyField source="article_title" dest="text"/>
`
	assert.Equal(t, want, buf.String())
}

func TestSchemaSaveConditionalAttrs(t *testing.T) {
	bag := expiscor.NewBag()

	f := expiscor.NewField("status", expiscor.Text)
	f.SetFlag(expiscor.FeatureOmitNorms, true)
	f.SetFlag(expiscor.FeatureHasDefault, true)
	f.DefaultValue = "draft"
	bag.MustAdd(f)

	// an explicit index type wins over the mapper
	g := expiscor.NewField("body_content", expiscor.Text)
	g.SetFeature(expiscor.FeatureIndexType, "text_general")
	g.SetFeature(expiscor.FeatureStored, "false")
	bag.MustAdd(g)

	codec := solr.NewSchemaCodec()
	var buf bytes.Buffer
	require.NoError(t, codec.Save(&buf, bag, "fields", 0))

	out := buf.String()
	assert.Contains(t, out, `<field name="status" type="string" indexed="true" stored="true" omitNorms="true" default="draft"/>`)
	assert.Contains(t, out, `<field name="body_content" type="text_general" indexed="true" stored="false"/>`)
	// no primary key, no uniqueKey sibling
	assert.NotContains(t, out, "<uniqueKey>")
	// body_content still earns a copy rule
	assert.Contains(t, out, `<copyField source="body_content" dest="text"/>`)
}

func TestSchemaSaveEscapesCopyFieldSource(t *testing.T) {
	bag := expiscor.NewBag()
	bag.MustAdd(expiscor.NewField("a&b_title", expiscor.Text))

	codec := solr.NewSchemaCodec()
	var buf bytes.Buffer
	require.NoError(t, codec.Save(&buf, bag, "fields", 0))

	out := buf.String()
	assert.Contains(t, out, `<field name="a&amp;b_title"`)
	assert.Contains(t, out, `<copyField source="a&amp;b_title" dest="text"/>`)
	assert.NotContains(t, out, `\"`)
}

func TestSchemaLoadRoundTrip(t *testing.T) {
	codec := solr.NewSchemaCodec()

	var buf bytes.Buffer
	require.NoError(t, codec.Save(&buf, articleBag(t), "fields", 1))

	wrapped := "<schema name=\"article\">\n" + buf.String() + "</schema>\n"
	doc, err := codec.LoadReader(strings.NewReader(wrapped))
	require.NoError(t, err)
	assert.Equal(t, "article", doc.Name)

	// the saved synthetic fields come back too
	require.NotNil(t, doc.Bag.FieldByName("text"))
	require.NotNil(t, doc.Bag.FieldByName("_version_"))

	id := doc.Bag.FieldByName("id")
	require.NotNil(t, id)
	assert.True(t, id.IsPrimaryKey(), "uniqueKey should mark the primary key")
	assert.True(t, id.IsRequired())
	assert.Equal(t, expiscor.Text, id.Type)

	created := doc.Bag.FieldByName("created_at")
	require.NotNil(t, created)
	assert.Equal(t, expiscor.DateTime, created.Type)

	count := doc.Bag.FieldByName("view_count")
	require.NotNil(t, count)
	assert.Equal(t, expiscor.Integer, count.Type)

	tags := doc.Bag.FieldByName("tags")
	require.NotNil(t, tags)
	assert.True(t, tags.MultiValued)
	assert.True(t, tags.IsFlagged(expiscor.FeatureIndexed))
	assert.True(t, tags.IsFlagged(expiscor.FeatureStored))
}

func TestSchemaLoadFlatFields(t *testing.T) {
	// declarations directly under the root flatten the same way
	doc, err := solr.NewSchemaCodec().LoadReader(strings.NewReader(`
<schema>
  <field name="id" type="string"/>
  <field type="string"/>
  <field name="id" type="int"/>
  <uniqueKey>id</uniqueKey>
</schema>`))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	// the nameless and duplicate declarations are skipped, not fatal
	assert.Equal(t, 1, doc.Bag.Len())
	assert.Equal(t, expiscor.Text, doc.Bag.FieldByName("id").Type)
	assert.True(t, doc.Bag.FieldByName("id").IsPrimaryKey())
}

func TestSchemaLoadKeepsUnknownAttrs(t *testing.T) {
	doc, err := solr.NewSchemaCodec().LoadReader(strings.NewReader(
		`<fields><field name="body" type="text_en" termVectors="true" indexed="false"/></fields>`))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	body := doc.Bag.FieldByName("body")
	require.NotNil(t, body)
	assert.Equal(t, "true", body.Feature("termVectors"))
	// indexed="false" is not recorded; absence re-saves as the default
	assert.False(t, body.HasFeature(expiscor.FeatureIndexed))
}

func TestSchemaLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds_schema_article.xml")
	content := `<fields><field name="id" type="string"/><uniqueKey>id</uniqueKey></fields>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := solr.NewSchemaCodec().LoadFile(path)
	require.NoError(t, err)
	assert.True(t, doc.Bag.FieldByName("id").IsPrimaryKey())

	_, err = solr.NewSchemaCodec().LoadFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

type staticGetter struct {
	body string
	err  error
}

func (g staticGetter) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	if g.err != nil {
		return nil, g.err
	}
	return io.NopCloser(strings.NewReader(g.body)), nil
}

func TestDownloadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds_schema_article.xml")
	content := `<fields><field name="id" type="string"/></fields>`

	err := solr.DownloadAndSave(context.Background(), staticGetter{body: content},
		"http://localhost:8983/solr/article/admin/file?file=schema.xml", path)
	require.NoError(t, err)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))
}

func TestDownloadAndSaveFailures(t *testing.T) {
	dir := t.TempDir()

	// transport failure surfaces with both sides of the copy named
	err := solr.DownloadAndSave(context.Background(), staticGetter{err: errors.New("boom")},
		"http://example/schema.xml", filepath.Join(dir, "out.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http://example/schema.xml")
	assert.Contains(t, err.Error(), "out.xml")

	// unwritable destination fails the same way
	err = solr.DownloadAndSave(context.Background(), staticGetter{body: "x"},
		"http://example/schema.xml", filepath.Join(dir, "no", "such", "dir", "out.xml"))
	assert.Error(t, err)
}
