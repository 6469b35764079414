package expiscor_test

import (
	"testing"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

func newArticleBag(t *testing.T) *expiscor.Bag {
	t.Helper()

	bag := expiscor.NewBag()
	id := expiscor.NewField("id", expiscor.Text)
	id.MarkPrimaryKey()
	id.SetFlag(expiscor.FeatureRequired, true)
	bag.MustAdd(id)
	bag.MustAdd(expiscor.NewField("title", expiscor.Text))
	bag.MustAdd(expiscor.NewMultiField("tags", expiscor.Text))
	return bag
}

func TestBagAddRejectsDuplicates(t *testing.T) {
	bag := newArticleBag(t)

	if err := bag.Add(expiscor.NewField("title", expiscor.Text)); err == nil {
		t.Fatal("Add should reject a duplicate field name")
	}

	second := expiscor.NewField("other_id", expiscor.Text)
	second.MarkPrimaryKey()
	if err := bag.Add(second); err == nil {
		t.Fatal("Add should reject a second primary key")
	}

	if err := bag.Add(&expiscor.Field{}); err == nil {
		t.Fatal("Add should reject a nameless field")
	}
}

func TestBagLookupAndOrder(t *testing.T) {
	bag := newArticleBag(t)

	if bag.Len() != 3 {
		t.Fatalf("Len = %d, want 3", bag.Len())
	}
	if f := bag.FieldByName("tags"); f == nil || !f.MultiValued {
		t.Fatal("FieldByName should find the tags field")
	}
	if f := bag.FieldByName("missing"); f != nil {
		t.Fatal("FieldByName should return nil for an unknown name")
	}

	want := []string{"id", "title", "tags"}
	for i, f := range bag.Fields() {
		if f.Name != want[i] {
			t.Fatalf("Fields[%d] = %q, want %q", i, f.Name, want[i])
		}
	}

	pk := bag.PrimaryKeyField()
	if pk == nil || pk.Name != "id" {
		t.Fatalf("PrimaryKeyField = %v, want id", pk)
	}
}

func TestBagValidate(t *testing.T) {
	bag := newArticleBag(t)

	if bag.IsValid() {
		t.Fatal("bag with an unassigned required field should not validate")
	}

	bag.FieldByName("id").SetValue("doc-1")
	if err := bag.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bag.ClearValues()
	if bag.IsValid() {
		t.Fatal("ClearValues should unassign the required field again")
	}
}

func TestBagCopyIsIndependent(t *testing.T) {
	bag := newArticleBag(t)
	bag.FieldByName("id").SetValue("doc-1")

	c := bag.Copy()
	c.FieldByName("id").SetValue("doc-2")
	c.FieldByName("tags").AddValue("copied")

	if got := bag.FieldByName("id").Value(); got != "doc-1" {
		t.Fatalf("copy mutated the original: id = %q", got)
	}
	if bag.FieldByName("tags").IsAssigned() {
		t.Fatal("copy mutated the original tags field")
	}
	if c.PrimaryKeyField() == nil {
		t.Fatal("copy should keep the primary-key mark")
	}
}
