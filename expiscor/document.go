package expiscor

// Relationship is a child record nested under a document.
type Relationship struct {
	Type string
	Bag  *Bag
}

// Document is a bag plus naming metadata and an ordered list of child
// relationships.
type Document struct {
	Name  string
	Title string
	Bag   *Bag

	relationships []*Relationship
}

func NewDocument(name string) *Document {
	return &Document{
		Name:  name,
		Title: TitleFromName(name),
		Bag:   NewBag(),
	}
}

// AddRelationship appends a child record of the given relationship type.
func (d *Document) AddRelationship(relType string, bag *Bag) *Relationship {
	rel := &Relationship{Type: relType, Bag: bag}
	d.relationships = append(d.relationships, rel)
	return rel
}

// Relationships returns the child records in insertion order.
func (d *Document) Relationships() []*Relationship {
	return d.relationships
}
