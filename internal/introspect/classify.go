package introspect

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-modelform/pkg/model"
)

// Kind classifies an attribute type for the widget heuristics.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindBool
	KindInt
	KindFloat
	KindTime
	KindGUID
	KindFile
	KindEnum
	KindEnumSlice
)

var (
	enumType = reflect.TypeOf((*model.Enum)(nil)).Elem()
	fileType = reflect.TypeOf(model.File{})
	guidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// Unwrap strips pointer wrappers so nullable attributes classify like their
// element type.
func Unwrap(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Classify maps an attribute type onto a heuristic kind. Designated types
// (file, guid, time) and enums win over the raw reflect kind so a string
// enum never classifies as plain text.
func Classify(t reflect.Type) Kind {
	t = Unwrap(t)
	if t == nil {
		return KindOther
	}

	switch {
	case t == fileType:
		return KindFile
	case t == guidType:
		return KindGUID
	case t.Kind() == reflect.Struct && t.ConvertibleTo(timeType):
		return KindTime
	case isEnum(t):
		return KindEnum
	case t.Kind() == reflect.Slice && isEnum(Unwrap(t.Elem())):
		return KindEnumSlice
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindText
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	default:
		return KindOther
	}
}

// IsNumeric reports whether k is an integer or floating-point kind.
func IsNumeric(k Kind) bool {
	return k == KindInt || k == KindFloat
}

// IsIdentifierLike reports whether k can carry an identifier: plain text,
// integers and guids qualify.
func IsIdentifierLike(k Kind) bool {
	return k == KindText || k == KindInt || k == KindGUID
}

func isEnum(t reflect.Type) bool {
	if t == nil {
		return false
	}
	return t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType)
}

// EnumOptions returns the declared choices of an enum attribute type, or nil
// when the type is not an enum. Slice types report their element's choices.
func EnumOptions(t reflect.Type) []string {
	t = Unwrap(t)
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Slice {
		t = Unwrap(t.Elem())
	}
	switch {
	case t.Implements(enumType):
		return reflect.Zero(t).Interface().(model.Enum).EnumValues()
	case reflect.PointerTo(t).Implements(enumType):
		return reflect.New(t).Interface().(model.Enum).EnumValues()
	default:
		return nil
	}
}
