package expiscor_test

import (
	"testing"
	"time"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

func TestFieldAssignment(t *testing.T) {
	f := expiscor.NewField("customer_name", expiscor.Text)

	if f.IsAssigned() {
		t.Fatal("new field should be unassigned")
	}
	if f.Title != "Customer Name" {
		t.Fatalf("Title = %q, want %q", f.Title, "Customer Name")
	}

	f.SetValue("Ada")
	if !f.IsAssigned() {
		t.Fatal("field should be assigned after SetValue")
	}
	if f.Value() != "Ada" {
		t.Fatalf("Value = %q, want %q", f.Value(), "Ada")
	}

	// AddValue on a scalar replaces rather than appends
	f.AddValue("Grace")
	if got := f.Values(); len(got) != 1 || got[0] != "Grace" {
		t.Fatalf("Values = %v, want [Grace]", got)
	}

	f.ClearValues()
	if f.IsAssigned() || f.Value() != "" {
		t.Fatal("ClearValues should return the field to unassigned")
	}
}

func TestFieldMultiValued(t *testing.T) {
	f := expiscor.NewMultiField("tags", expiscor.Text)
	f.AddValue("news")
	f.AddValue("tech")
	f.AddValue("go")

	got := f.Values()
	want := []string{"news", "tech", "go"}
	if len(got) != len(want) {
		t.Fatalf("Values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// SetValue collapses back to a single value
	f.SetValue("only")
	if got := f.Values(); len(got) != 1 || got[0] != "only" {
		t.Fatalf("Values after SetValue = %v, want [only]", got)
	}
}

func TestFieldTypedSetters(t *testing.T) {
	f := expiscor.NewField("count", expiscor.Integer)
	f.SetInt(42)
	if f.Value() != "42" {
		t.Fatalf("SetInt: Value = %q", f.Value())
	}

	f.SetLong(1 << 40)
	if f.Value() != "1099511627776" {
		t.Fatalf("SetLong: Value = %q", f.Value())
	}

	f.SetFloat(2.5)
	if f.Value() != "2.5" {
		t.Fatalf("SetFloat: Value = %q", f.Value())
	}

	f.SetBool(true)
	if f.Value() != "true" {
		t.Fatalf("SetBool: Value = %q", f.Value())
	}

	when := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	f.SetTime(when)
	if f.Value() != "2024-03-15T10:30:00Z" {
		t.Fatalf("SetTime: Value = %q", f.Value())
	}
}

func TestFieldFeatures(t *testing.T) {
	f := expiscor.NewField("id", expiscor.Text)

	if f.IsPrimaryKey() || f.HasFeature(expiscor.FeaturePrimaryKey) {
		t.Fatal("new field should carry no features")
	}

	f.MarkPrimaryKey()
	if !f.IsPrimaryKey() {
		t.Fatal("MarkPrimaryKey should set the primary-key flag")
	}

	f.SetFeature(expiscor.FeatureIndexType, "string")
	if got := f.Feature(expiscor.FeatureIndexType); got != "string" {
		t.Fatalf("Feature = %q, want %q", got, "string")
	}

	f.SetFlag(expiscor.FeatureHidden, false)
	if !f.HasFeature(expiscor.FeatureHidden) {
		t.Fatal("HasFeature should see a feature set to false")
	}
	if f.IsHidden() {
		t.Fatal("IsHidden should be false for a false flag")
	}

	names := f.FeatureNames()
	if len(names) != 3 {
		t.Fatalf("FeatureNames = %v, want 3 names", names)
	}
}

func TestFieldCopyIsIndependent(t *testing.T) {
	f := expiscor.NewMultiField("tags", expiscor.Text)
	f.AddValue("a")
	f.SetFeature(expiscor.FeatureRequired, "true")

	c := f.Copy()
	c.AddValue("b")
	c.SetFeature(expiscor.FeatureRequired, "false")

	if got := f.Values(); len(got) != 1 {
		t.Fatalf("copy mutated the original values: %v", got)
	}
	if !f.IsRequired() {
		t.Fatal("copy mutated the original features")
	}
}

func TestDomainTypeStrings(t *testing.T) {
	if expiscor.DateTime.String() != "DateTime" {
		t.Fatalf("DateTime.String() = %q", expiscor.DateTime.String())
	}
	if expiscor.Text.String() != "Text" {
		t.Fatalf("Text.String() = %q", expiscor.Text.String())
	}
	if !expiscor.Date.IsDateOrTime() || expiscor.Integer.IsDateOrTime() {
		t.Fatal("IsDateOrTime misclassifies types")
	}
}

func TestTitleFromName(t *testing.T) {
	cases := map[string]string{
		"customer_name": "Customer Name",
		"id":            "Id",
		"full_text_en":  "Full Text En",
	}
	for name, want := range cases {
		if got := expiscor.TitleFromName(name); got != want {
			t.Fatalf("TitleFromName(%q) = %q, want %q", name, got, want)
		}
	}
}
