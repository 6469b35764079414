package expiscor

import (
	"strconv"
	"strings"
	"time"
)

// DomainType specifies the domain type of a field value.
type DomainType int

const (
	Text DomainType = iota
	Integer
	Long
	Float
	Double
	Boolean
	Date
	Time
	DateTime
)

func (t DomainType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Boolean:
		return "Boolean"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	default:
		return "Text"
	}
}

// IsDateOrTime reports whether the type holds a calendar or clock value.
func (t DomainType) IsDateOrTime() bool {
	return t == Date || t == Time || t == DateTime
}

// Reserved feature names interpreted by the codecs. Where a feature mirrors
// a schema attribute it uses the attribute's spelling, so attributes loaded
// verbatim round-trip without translation.
const (
	FeaturePrimaryKey = "isPrimaryKey"
	FeatureHidden     = "isHidden"
	FeatureContent    = "isContent"
	FeatureIndexed    = "indexed"
	FeatureStored     = "stored"
	FeatureRequired   = "required"
	FeatureOmitNorms  = "omitNorms"
	FeatureHasDefault = "hasDefault"
	FeatureIndexType  = "indexType"
)

// FieldValueFormat is the storage layout for date and time field values.
// Setters write it and the codecs parse it back before re-formatting.
const FieldValueFormat = time.RFC3339

// Field is a named, typed, possibly multi-valued data element with feature
// flags. Fields are plain value objects; nothing mutates them in the
// background.
type Field struct {
	Name         string
	Title        string
	Type         DomainType
	MultiValued  bool
	DefaultValue string

	values   []string
	assigned bool
	features map[string]string
}

// NewField creates an unassigned scalar field.
func NewField(name string, domainType DomainType) *Field {
	return &Field{
		Name:  name,
		Title: TitleFromName(name),
		Type:  domainType,
	}
}

// NewMultiField creates an unassigned multi-valued field.
func NewMultiField(name string, domainType DomainType) *Field {
	f := NewField(name, domainType)
	f.MultiValued = true
	return f
}

// SetValue assigns a single value, replacing any previous values.
func (f *Field) SetValue(value string) {
	f.values = append(f.values[:0], value)
	f.assigned = true
}

// AddValue appends a value. On a scalar field it behaves like SetValue.
func (f *Field) AddValue(value string) {
	if !f.MultiValued {
		f.SetValue(value)
		return
	}
	f.values = append(f.values, value)
	f.assigned = true
}

func (f *Field) SetInt(v int) {
	f.SetValue(strconv.Itoa(v))
}

func (f *Field) SetLong(v int64) {
	f.SetValue(strconv.FormatInt(v, 10))
}

func (f *Field) SetFloat(v float64) {
	f.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
}

func (f *Field) SetBool(v bool) {
	f.SetValue(strconv.FormatBool(v))
}

func (f *Field) SetTime(v time.Time) {
	f.SetValue(v.Format(FieldValueFormat))
}

// Value returns the first value, or the empty string when unassigned.
func (f *Field) Value() string {
	if len(f.values) == 0 {
		return ""
	}
	return f.values[0]
}

// Values returns the ordered value list. The slice is shared; treat it as
// read-only.
func (f *Field) Values() []string {
	return f.values
}

// IsAssigned reports whether a value has ever been set.
func (f *Field) IsAssigned() bool {
	return f.assigned
}

// ClearValues drops all values and returns the field to unassigned.
func (f *Field) ClearValues() {
	f.values = f.values[:0]
	f.assigned = false
}

// SetFeature stores a named feature value.
func (f *Field) SetFeature(name, value string) {
	if f.features == nil {
		f.features = make(map[string]string)
	}
	f.features[name] = value
}

// SetFlag stores a boolean feature.
func (f *Field) SetFlag(name string, on bool) {
	f.SetFeature(name, strconv.FormatBool(on))
}

// Feature returns the feature value, or the empty string when absent.
func (f *Field) Feature(name string) string {
	return f.features[name]
}

// HasFeature reports whether the feature is present, regardless of value.
func (f *Field) HasFeature(name string) bool {
	_, ok := f.features[name]
	return ok
}

// IsFlagged reports whether the feature is present and parses as true.
func (f *Field) IsFlagged(name string) bool {
	v, ok := f.features[name]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// FeatureNames returns the feature names in no particular order.
func (f *Field) FeatureNames() []string {
	names := make([]string, 0, len(f.features))
	for name := range f.features {
		names = append(names, name)
	}
	return names
}

// MarkPrimaryKey marks the field as the record's primary key. The mark is
// permanent for the field's lifetime; there is deliberately no unmark.
func (f *Field) MarkPrimaryKey() {
	f.SetFlag(FeaturePrimaryKey, true)
}

func (f *Field) IsPrimaryKey() bool {
	return f.IsFlagged(FeaturePrimaryKey)
}

func (f *Field) IsHidden() bool {
	return f.IsFlagged(FeatureHidden)
}

func (f *Field) IsContent() bool {
	return f.IsFlagged(FeatureContent)
}

func (f *Field) IsRequired() bool {
	return f.IsFlagged(FeatureRequired)
}

// Copy returns an independent copy of the field, values and features
// included.
func (f *Field) Copy() *Field {
	c := *f
	c.values = append([]string(nil), f.values...)
	if f.features != nil {
		c.features = make(map[string]string, len(f.features))
		for k, v := range f.features {
			c.features[k] = v
		}
	}
	return &c
}

// TitleFromName derives a display title from a field name:
// "customer_name" becomes "Customer Name".
func TitleFromName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
