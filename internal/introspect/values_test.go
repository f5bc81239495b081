package introspect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type record struct {
	Name  string
	Count int64
	Score *float64
	Tags  []string
}

func (r record) Summary() string { return r.Name + "!" }

func TestGet_StructField(t *testing.T) {
	r := record{Name: "Ada"}
	got, err := Get(&r, "Name", false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "Ada" {
		t.Fatalf("want Ada, got %v", got)
	}
}

func TestGet_Computed(t *testing.T) {
	r := record{Name: "Ada"}
	got, err := Get(&r, "Summary", true)
	if err != nil {
		t.Fatalf("get computed: %v", err)
	}
	if got != "Ada!" {
		t.Fatalf("want Ada!, got %v", got)
	}
}

func TestGet_UnknownField(t *testing.T) {
	r := record{}
	if _, err := Get(&r, "Nope", false); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestGet_RequiresPointer(t *testing.T) {
	if _, err := Get(record{}, "Name", false); err == nil {
		t.Fatal("expected error for non-pointer model reference")
	}
}

func TestSet_StructField(t *testing.T) {
	r := record{}

	if err := Set(&r, "Name", "Grace"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	if err := Set(&r, "Count", 7); err != nil {
		t.Fatalf("set convertible int: %v", err)
	}
	if err := Set(&r, "Score", 0.5); err != nil {
		t.Fatalf("set pointer via element: %v", err)
	}
	if err := Set(&r, "Tags", []string{"a"}); err != nil {
		t.Fatalf("set slice: %v", err)
	}

	if r.Name != "Grace" || r.Count != 7 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Score == nil || *r.Score != 0.5 {
		t.Fatalf("pointer field not allocated: %v", r.Score)
	}
}

func TestSet_NilZeroes(t *testing.T) {
	score := 1.5
	r := record{Name: "Ada", Score: &score}

	if err := Set(&r, "Name", nil); err != nil {
		t.Fatalf("zero string: %v", err)
	}
	if err := Set(&r, "Score", nil); err != nil {
		t.Fatalf("zero pointer: %v", err)
	}
	if r.Name != "" || r.Score != nil {
		t.Fatalf("fields not zeroed: %+v", r)
	}
}

func TestSet_TypeMismatch(t *testing.T) {
	r := record{}
	if err := Set(&r, "Count", "not a number"); err == nil {
		t.Fatal("expected error assigning string to int64")
	}
	if err := Set(&r, "Name", 42); err == nil {
		t.Fatal("expected error assigning int to string")
	}
}

func TestGetSet_MapModel(t *testing.T) {
	m := map[string]any{"name": "Ada"}

	got, err := Get(&m, "name", false)
	if err != nil || got != "Ada" {
		t.Fatalf("map get: %v %v", got, err)
	}

	absent, err := Get(&m, "missing", false)
	if err != nil || absent != nil {
		t.Fatalf("absent key should read as nil, got %v %v", absent, err)
	}

	if err := Set(&m, "age", 30); err != nil {
		t.Fatalf("map set: %v", err)
	}
	if m["age"] != 30 {
		t.Fatalf("map not updated: %v", m)
	}

	var empty map[string]any
	if err := Set(&empty, "k", "v"); err != nil {
		t.Fatalf("nil map set: %v", err)
	}
	if empty["k"] != "v" {
		t.Fatalf("nil map not initialized: %v", empty)
	}
}

func TestClone_Isolation(t *testing.T) {
	src := record{
		Name: "Ada",
		Tags: []string{"x", "y"},
	}

	dst := Clone(src)
	dst.Tags[0] = "mutated"
	dst.Name = "Grace"

	if src.Tags[0] != "x" {
		t.Fatal("clone shares slice backing with source")
	}
	if src.Name != "Ada" {
		t.Fatal("clone shares scalar state with source")
	}
}

func TestClone_MapModel(t *testing.T) {
	src := map[string]any{"tags": []any{"a"}, "name": "Ada"}
	dst := Clone(src)

	dst["name"] = "Grace"
	dst["tags"].([]any)[0] = "b"

	want := map[string]any{"tags": []any{"a"}, "name": "Ada"}
	if diff := cmp.Diff(want, src); diff != "" {
		t.Fatalf("source mutated through clone (-want +got):\n%s", diff)
	}
}
