// Package solr implements the codec layer for a Solr search index: the
// domain/index type mapping, the schema-descriptor XML codec, the
// update-message XML writer, and the thin HTTP surfaces (collection admin,
// feed posting) around them.
package solr

import (
	"strings"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

// DefaultFullTextType is the analyzed field type assigned to text fields
// whose names suggest prose content.
const DefaultFullTextType = "text_en"

// fullTextSuffixes are the field-name endings that route a Text field to
// the full-text type and earn it a copyField into the catch-all.
var fullTextSuffixes = []string{"_name", "_title", "_description", "_content"}

// HasFullTextSuffix reports whether the field name ends with a recognized
// prose suffix.
func HasFullTextSuffix(name string) bool {
	for _, suffix := range fullTextSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// TypeMapper converts between domain field types and Solr field type
// names. The mapping is deliberately lossy in the reverse direction:
// Date, Time, and DateTime all serialize as "date", and "date" always
// loads back as DateTime. That collapse is documented behavior.
type TypeMapper struct {
	FullTextType string
}

func NewTypeMapper() TypeMapper {
	return TypeMapper{FullTextType: DefaultFullTextType}
}

// ToIndexType returns the Solr type name for a domain type. The field name
// participates for Text fields: prose-suffixed names map to the full-text
// type, everything else to "string".
func (m TypeMapper) ToIndexType(domainType expiscor.DomainType, fieldName string) string {
	switch domainType {
	case expiscor.Integer:
		return "int"
	case expiscor.Long:
		return "long"
	case expiscor.Float:
		return "float"
	case expiscor.Double:
		return "double"
	case expiscor.Boolean:
		return "boolean"
	case expiscor.Date, expiscor.Time, expiscor.DateTime:
		return "date"
	default:
		if HasFullTextSuffix(fieldName) {
			return m.fullTextType()
		}
		return "string"
	}
}

// ToDomainType returns the domain type for a Solr type name. Unrecognized
// names fall back to Text rather than failing the load.
func (m TypeMapper) ToDomainType(indexType string) expiscor.DomainType {
	switch indexType {
	case "int":
		return expiscor.Integer
	case "long":
		return expiscor.Long
	case "float":
		return expiscor.Float
	case "double":
		return expiscor.Double
	case "boolean":
		return expiscor.Boolean
	case "date", "time":
		return expiscor.DateTime
	default:
		return expiscor.Text
	}
}

func (m TypeMapper) fullTextType() string {
	if m.FullTextType == "" {
		return DefaultFullTextType
	}
	return m.FullTextType
}
