// Package introspect is the reflection seam of the form pipeline. It
// enumerates the scaffoldable attributes of a model type, classifies
// attribute types for the widget heuristics, and moves values in and out of
// the working copy a render pass edits. Everything above this package deals
// in attribute names and any-typed values.
package introspect

import (
	"fmt"
	"reflect"
	"strings"
)

// Attribute describes one scaffoldable member of a model type.
type Attribute struct {
	Name     string
	Type     reflect.Type
	Label    string // optional override from the struct tag
	Required bool
	Computed bool
}

// methodDenylist keeps conventional interface methods out of attribute
// enumeration; they describe the type, not the record.
var methodDenylist = map[string]bool{
	"String":     true,
	"GoString":   true,
	"Error":      true,
	"EnumValues": true,
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Attributes returns the scaffoldable members of t: exported fields in
// declaration order, then exported zero-argument single-result methods from
// the pointer method set as computed (read-only) attributes. A method
// sharing a field's name replaces the field entry in place, last wins.
//
// The tag grammar is comma-separated: a "-" entry skips the field, the bare
// flag "required" marks it, and "label=..." overrides the derived label.
func Attributes(t reflect.Type, tag string) ([]Attribute, error) {
	t = Unwrap(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("introspect: model type %s is not a struct", t)
	}

	var attrs []Attribute
	index := map[string]int{}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		skip, required, label := parseTag(f.Tag.Get(tag))
		if skip {
			continue
		}
		index[f.Name] = len(attrs)
		attrs = append(attrs, Attribute{
			Name:     f.Name,
			Type:     f.Type,
			Label:    label,
			Required: required,
		})
	}

	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if !m.IsExported() || methodDenylist[m.Name] {
			continue
		}
		// Receiver only in, exactly one result, and that result is data.
		if m.Func.Type().NumIn() != 1 || m.Func.Type().NumOut() != 1 {
			continue
		}
		out := m.Func.Type().Out(0)
		if out == errType {
			continue
		}
		attr := Attribute{Name: m.Name, Type: out, Computed: true}
		if at, ok := index[m.Name]; ok {
			attrs[at] = attr
			continue
		}
		index[m.Name] = len(attrs)
		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func parseTag(raw string) (skip, required bool, label string) {
	if raw == "" {
		return false, false, ""
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "-":
			skip = true
		case part == "required":
			required = true
		case strings.HasPrefix(part, "label="):
			label = strings.TrimPrefix(part, "label=")
		}
	}
	return skip, required, label
}
