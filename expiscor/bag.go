package expiscor

import "fmt"

// Bag is an ordered, name-unique collection of fields. Insertion order is
// semantically meaningful: it drives XML emission order and copy-rule
// ordering downstream.
type Bag struct {
	fields []*Field
	byName map[string]int
}

func NewBag() *Bag {
	return &Bag{byName: make(map[string]int)}
}

// Add appends a field. Duplicate names and a second primary key are
// rejected.
func (b *Bag) Add(f *Field) error {
	if f == nil || f.Name == "" {
		return NewError("field must have a name")
	}
	if _, exists := b.byName[f.Name]; exists {
		return Errorf("duplicate field name %q", f.Name)
	}
	if f.IsPrimaryKey() && b.PrimaryKeyField() != nil {
		return Errorf("bag already has primary key %q", b.PrimaryKeyField().Name)
	}
	b.byName[f.Name] = len(b.fields)
	b.fields = append(b.fields, f)
	return nil
}

// MustAdd is Add for construction sites where the names are literals.
func (b *Bag) MustAdd(f *Field) *Field {
	if err := b.Add(f); err != nil {
		panic(err)
	}
	return f
}

// FieldByName returns the named field, or nil.
func (b *Bag) FieldByName(name string) *Field {
	i, ok := b.byName[name]
	if !ok {
		return nil
	}
	return b.fields[i]
}

// Fields returns the fields in insertion order. The slice is shared; treat
// it as read-only.
func (b *Bag) Fields() []*Field {
	return b.fields
}

func (b *Bag) Len() int {
	return len(b.fields)
}

// PrimaryKeyField returns the field carrying the primary-key feature, or
// nil.
func (b *Bag) PrimaryKeyField() *Field {
	for _, f := range b.fields {
		if f.IsPrimaryKey() {
			return f
		}
	}
	return nil
}

// Validate reports the first required field that carries no value. A
// failing bag may still be serialized; callers treat this as advisory.
func (b *Bag) Validate() error {
	for _, f := range b.fields {
		if f.IsRequired() && !f.IsAssigned() {
			return Errorf("required field %q is unassigned", f.Name)
		}
	}
	return nil
}

// IsValid reports whether Validate passes.
func (b *Bag) IsValid() bool {
	return b.Validate() == nil
}

// ClearValues returns every field to unassigned, keeping the field layout.
func (b *Bag) ClearValues() {
	for _, f := range b.fields {
		f.ClearValues()
	}
}

// Copy returns an independent deep copy of the bag.
func (b *Bag) Copy() *Bag {
	c := NewBag()
	for _, f := range b.fields {
		if err := c.Add(f.Copy()); err != nil {
			// the source bag already holds unique names
			panic(fmt.Sprintf("bag copy: %v", err))
		}
	}
	return c
}
