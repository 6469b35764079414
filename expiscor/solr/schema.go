package solr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/xmldom"
)

// CatchAllFieldName is the aggregate full-text field every prose-suffixed
// field copies into.
const CatchAllFieldName = "text"

// SchemaCodec serializes a bag to the schema-descriptor XML dialect and
// parses that dialect back into a document. Codec instances are stateless
// transformers; each call is independent.
type SchemaCodec struct {
	Mapper TypeMapper
}

func NewSchemaCodec() SchemaCodec {
	return SchemaCodec{Mapper: NewTypeMapper()}
}

// Save emits the schema for bag as an element named tagName, followed by
// the sibling uniqueKey and copyField elements the bag implies. The
// uniqueKey and copy rules are derived at serialization time, never stored.
func (c SchemaCodec) Save(w io.Writer, bag *expiscor.Bag, tagName string, indent int) error {
	pad := strings.Repeat(" ", indent*2)
	inner := strings.Repeat(" ", (indent+1)*2)

	if _, err := fmt.Fprintf(w, "%s<%s>\n", pad, tagName); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s<field name=\"%s\" type=\"%s\" indexed=\"true\" stored=\"false\" multiValued=\"true\"/>\n",
		inner, CatchAllFieldName, escapeAttr(c.Mapper.fullTextType())); err != nil {
		return err
	}
	for _, f := range bag.Fields() {
		if err := c.saveField(w, f, inner); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s<field name=\"_version_\" type=\"long\" indexed=\"true\" stored=\"true\"/>\n", inner); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s</%s>\n", pad, tagName); err != nil {
		return err
	}

	if pk := bag.PrimaryKeyField(); pk != nil {
		if _, err := fmt.Fprintf(w, "%s<uniqueKey>%s</uniqueKey>\n", pad, escapeText(pk.Name)); err != nil {
			return err
		}
	}
	for _, f := range bag.Fields() {
		if !HasFullTextSuffix(f.Name) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s<copyField source=\"%s\" dest=\"%s\"/>\n",
			pad, escapeAttr(f.Name), CatchAllFieldName); err != nil {
			return err
		}
	}
	return nil
}

// saveField writes one field declaration. Attribute order is fixed by the
// dialect: name, type, indexed, stored, then the conditional attributes.
func (c SchemaCodec) saveField(w io.Writer, f *expiscor.Field, pad string) error {
	var b strings.Builder
	b.WriteString(pad)
	b.WriteString("<field name=\"")
	b.WriteString(escapeAttr(f.Name))
	b.WriteString("\"")

	indexType := f.Feature(expiscor.FeatureIndexType)
	if indexType == "" {
		indexType = c.Mapper.ToIndexType(f.Type, f.Name)
	}
	writeAttr(&b, "type", indexType)

	indexed := f.Feature(expiscor.FeatureIndexed)
	if indexed == "" {
		indexed = "true"
	}
	writeAttr(&b, "indexed", indexed)

	stored := f.Feature(expiscor.FeatureStored)
	if stored == "" {
		stored = "true"
	}
	writeAttr(&b, "stored", stored)

	if f.IsRequired() {
		writeAttr(&b, "required", "true")
	}
	if f.MultiValued {
		writeAttr(&b, "multiValued", "true")
	}
	if f.IsFlagged(expiscor.FeatureOmitNorms) {
		writeAttr(&b, "omitNorms", "true")
	}
	if f.IsFlagged(expiscor.FeatureHasDefault) && f.DefaultValue != "" {
		writeAttr(&b, "default", f.DefaultValue)
	}

	b.WriteString("/>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString("=\"")
	b.WriteString(escapeAttr(value))
	b.WriteString("\"")
}

// Load walks a parsed schema element into a document. Field declarations
// may sit directly under the root or nested under a fields child; both
// flatten into the same bag. A uniqueKey child marks the named field as the
// primary key.
func (c SchemaCodec) Load(el *xmldom.Element) (*expiscor.Document, error) {
	doc := expiscor.NewDocument(el.Attr("name"))
	for _, child := range el.Children {
		switch child.Name {
		case "fields":
			for _, fieldEl := range child.ChildrenNamed("field") {
				c.addLoadedField(doc.Bag, fieldEl)
			}
		case "field":
			c.addLoadedField(doc.Bag, child)
		case "uniqueKey":
			if f := doc.Bag.FieldByName(child.TextContent()); f != nil {
				f.MarkPrimaryKey()
			}
		}
	}
	return doc, nil
}

// LoadReader parses a schema document from r and loads its root element.
func (c SchemaCodec) LoadReader(r io.Reader) (*expiscor.Document, error) {
	root, err := xmldom.Parse(r)
	if err != nil {
		return nil, expiscor.WrapError("parse schema XML", err)
	}
	return c.Load(root)
}

// LoadFile opens path, parses it, and loads its root element.
func (c SchemaCodec) LoadFile(path string) (*expiscor.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, expiscor.WrapError(fmt.Sprintf("open schema file %s", path), err)
	}
	defer f.Close()
	return c.LoadReader(f)
}

// addLoadedField parses one field declaration and adds it to the bag. A
// declaration without a name, or one colliding with an earlier name, is
// skipped; a partial schema load beats no load at all.
func (c SchemaCodec) addLoadedField(bag *expiscor.Bag, el *xmldom.Element) {
	f := c.loadField(el)
	if f == nil {
		return
	}
	_ = bag.Add(f)
}

// loadField interprets a field element's attributes. name is mandatory;
// type maps through ToDomainType; indexed, stored, and multiValued are
// interpreted when boolean-true; everything else is kept verbatim as an
// opaque feature.
func (c SchemaCodec) loadField(el *xmldom.Element) *expiscor.Field {
	name := el.Attr("name")
	if name == "" {
		return nil
	}
	f := expiscor.NewField(name, expiscor.Text)
	for _, a := range el.Attrs {
		switch a.Name {
		case "name":
		case "type":
			f.Type = c.Mapper.ToDomainType(a.Value)
		case "indexed", "stored":
			if parseBool(a.Value) {
				f.SetFeature(a.Name, "true")
			}
		case "multiValued":
			if parseBool(a.Value) {
				f.MultiValued = true
			}
		default:
			f.SetFeature(a.Name, a.Value)
		}
	}
	return f
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// Getter fetches bytes over the wire; the HTTP client implements it.
type Getter interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}

// DownloadAndSave retrieves url through the transport and writes the body
// verbatim to path. The body is not parsed or validated here; a failure
// surfaces as one structured error naming both sides of the copy.
func DownloadAndSave(ctx context.Context, g Getter, url, path string) error {
	fail := func(cause error) error {
		return expiscor.WrapError(fmt.Sprintf("download schema from %s to %s", url, path), cause)
	}

	body, err := g.Get(ctx, url)
	if err != nil {
		return fail(err)
	}
	defer body.Close()

	out, err := os.Create(path)
	if err != nil {
		return fail(err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}
	return nil
}
