package fields

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode(%s): %v", s, err)
	}
	return v
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{"nested object", `{"a": {"b": 1, "c": "x"}}`, []string{"a.b", "a.c"}},
		{"key order kept", `{"z": 1, "a": 2, "m": {"y": 3, "b": 4}}`, []string{"z", "a", "m.y", "m.b"}},
		{"array uses first element", `{"items": [{"id": 1, "sku": "a"}, {"other": true}]}`, []string{"items.id", "items.sku"}},
		{"top-level array", `[{"a": 1}]`, []string{"a"}},
		{"array of scalars", `{"tags": ["x", "y"]}`, []string{"tags"}},
		{"empty array is a leaf", `{"tags": [], "n": 1}`, []string{"tags", "n"}},
		{"empty object contributes nothing", `{"meta": {}, "n": 1}`, []string{"n"}},
		{"nested empty object", `{"a": {"b": {}, "c": 1}}`, []string{"a.c"}},
		{"null is a leaf", `{"a": null}`, []string{"a"}},
		{"scalar root", `42`, nil},
		{"empty root", `{}`, nil},
		{"deep", `{"customer": {"address": {"city": "Oslo", "zip": "0150"}}}`, []string{"customer.address.city", "customer.address.zip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(mustDecode(t, tt.json), "")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenLeafIsIdempotent(t *testing.T) {
	doc := mustDecode(t, `{"a": {"b": 1, "c": "x", "d": [{"e": true}]}, "f": 2.5}`)
	for _, path := range Flatten(doc, "") {
		leaf := Resolve(doc, path)
		got := Flatten(leaf, path)
		if diff := cmp.Diff([]string{path}, got); diff != "" {
			t.Errorf("Flatten(leaf of %q) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestInferType(t *testing.T) {
	doc := mustDecode(t, `{
		"name": "Ada",
		"amount": 12.5,
		"count": 3,
		"exp": 1e3,
		"active": true,
		"note": null,
		"tags": ["a"],
		"meta": {},
		"customer": {"address": {"city": "Oslo"}},
		"lines": [{"sku": "x", "qty": 2}],
		"grid": [[{"b": 1}]]
	}`)

	tests := []struct {
		path string
		want TypeTag
	}{
		{"name", TypeString},
		{"amount", TypeFloat},
		{"count", TypeNumber},
		{"exp", TypeFloat},
		{"active", TypeBoolean},
		{"note", TypeNull},
		{"tags", TypeList},
		{"meta", TypeUnknown},
		{"customer", TypeUnknown},
		{"customer.address.city", TypeString},
		{"lines.sku", TypeString},
		{"lines.qty", TypeNumber},
		{"lines", TypeList},
		{"missing", TypeNull},
		{"customer.missing.deeper", TypeNull},
		{"name.first", TypeNull},
		{"grid.b", TypeNull},
	}
	for _, tt := range tests {
		if got := InferType(doc, tt.path); got != tt.want {
			t.Errorf("InferType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTypeOfBooleanIsNeverNumber(t *testing.T) {
	if got := TypeOf(false); got != TypeBoolean {
		t.Errorf("TypeOf(false) = %q, want %q", got, TypeBoolean)
	}
	if got := TypeOf(json.Number("0")); got != TypeNumber {
		t.Errorf("TypeOf(0) = %q, want %q", got, TypeNumber)
	}
}

func TestTypeTagKnown(t *testing.T) {
	for _, tag := range TypeTags {
		if !tag.Known() {
			t.Errorf("%q should be known", tag)
		}
	}
	if TypeTag("int").Known() {
		t.Error(`"int" should not be known`)
	}
}

func TestDescribe(t *testing.T) {
	doc := mustDecode(t, `{"transactions": [{"id": 1, "payer": {"name": "a"}}, {"id": 2, "payer": {"name": "b"}, "fee": 0.5}]}`)
	want := []Field{
		{"transactions", "array"},
		{"transactions.id", "integer"},
		{"transactions.payer", "object"},
		{"transactions.payer.name", "string"},
		{"transactions.fee", "float"},
	}
	if diff := cmp.Diff(want, Describe(doc)); diff != "" {
		t.Errorf("Describe mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRoundTripKeepsOrderAndNumbers(t *testing.T) {
	in := `{"b": 1.0, "a": {"y": "v", "x": [1, 2]}, "c": null, "d": false}`
	v := mustDecode(t, in)
	out, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{
  "b": 1.0,
  "a": {
    "y": "v",
    "x": [
      1,
      2
    ]
  },
  "c": null,
  "d": false
}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeObjectRejectsNonObject(t *testing.T) {
	if _, err := DecodeObject([]byte(`[1, 2]`)); err == nil {
		t.Error("expected error for array root")
	}
	if _, err := DecodeObject([]byte(`{"a": `)); err == nil {
		t.Error("expected error for truncated input")
	}
}

func TestPathHelpers(t *testing.T) {
	if got := Last("x.y.z"); got != "z" {
		t.Errorf("Last = %q", got)
	}
	if got := Last("total"); got != "total" {
		t.Errorf("Last = %q", got)
	}
	if p, ok := Parent("x.y.z"); !ok || p != "y" {
		t.Errorf("Parent = %q, %v", p, ok)
	}
	if _, ok := Parent("total"); ok {
		t.Error("Parent of single segment should be false")
	}
	if !IsNested("a.b", "a") || IsNested("ab.c", "a") || IsNested("a", "a") {
		t.Error("IsNested mismatch")
	}
	if got := Join("", "a"); got != "a" {
		t.Errorf("Join = %q", got)
	}
}
