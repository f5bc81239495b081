package introspect

import (
	"fmt"
	"reflect"
)

// Get reads the named attribute from the model held at ptr. ptr must be a
// pointer to a struct or to a map[string]any working copy. Computed
// attributes are read by calling the backing method; absent map keys read
// as nil rather than failing.
func Get(ptr any, name string, computed bool) (any, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("introspect: model reference must be a non-nil pointer, got %T", ptr)
	}

	if computed {
		m := rv.MethodByName(name)
		if !m.IsValid() {
			m = rv.Elem().MethodByName(name)
		}
		if !m.IsValid() {
			return nil, fmt.Errorf("introspect: %s has no method %s", rv.Elem().Type(), name)
		}
		return m.Call(nil)[0].Interface(), nil
	}

	elem := rv.Elem()
	switch elem.Kind() {
	case reflect.Struct:
		f := elem.FieldByName(name)
		if !f.IsValid() {
			return nil, fmt.Errorf("introspect: %s has no field %s", elem.Type(), name)
		}
		return f.Interface(), nil
	case reflect.Map:
		if elem.IsNil() {
			return nil, nil
		}
		v := elem.MapIndex(reflect.ValueOf(name))
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil
	default:
		return nil, fmt.Errorf("introspect: cannot read attribute %q from %s", name, elem.Type())
	}
}

// Set writes value into the named attribute of the model held at ptr.
// Values are converted to the attribute's type when the conversion is
// lossless at the type level; pointer attributes accept element values and
// allocate. A nil value zeroes the attribute.
func Set(ptr any, name string, value any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("introspect: model reference must be a non-nil pointer, got %T", ptr)
	}

	elem := rv.Elem()
	switch elem.Kind() {
	case reflect.Struct:
		f := elem.FieldByName(name)
		if !f.IsValid() {
			return fmt.Errorf("introspect: %s has no field %s", elem.Type(), name)
		}
		if !f.CanSet() {
			return fmt.Errorf("introspect: field %s of %s is not settable", name, elem.Type())
		}
		return setValue(f, value)
	case reflect.Map:
		if elem.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("introspect: map model must be keyed by string, got %s", elem.Type())
		}
		if elem.IsNil() {
			elem.Set(reflect.MakeMap(elem.Type()))
		}
		if value == nil {
			elem.SetMapIndex(reflect.ValueOf(name), reflect.Zero(elem.Type().Elem()))
			return nil
		}
		elem.SetMapIndex(reflect.ValueOf(name), reflect.ValueOf(value))
		return nil
	default:
		return fmt.Errorf("introspect: cannot write attribute %q on %s", name, elem.Type())
	}
}

func setValue(f reflect.Value, value any) error {
	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(f.Type()):
		f.Set(v)
	case v.Type().ConvertibleTo(f.Type()) && safeConversion(v.Type(), f.Type()):
		f.Set(v.Convert(f.Type()))
	case f.Kind() == reflect.Pointer:
		target := f.Type().Elem()
		switch {
		case v.Type().AssignableTo(target):
			p := reflect.New(target)
			p.Elem().Set(v)
			f.Set(p)
		case v.Type().ConvertibleTo(target) && safeConversion(v.Type(), target):
			p := reflect.New(target)
			p.Elem().Set(v.Convert(target))
			f.Set(p)
		default:
			return fmt.Errorf("introspect: cannot assign %T to *%s", value, target)
		}
	default:
		return fmt.Errorf("introspect: cannot assign %T to %s", value, f.Type())
	}
	return nil
}

// safeConversion rejects the convertible-but-surprising cases, like an
// integer converting into a string of one rune.
func safeConversion(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && from.Kind() != reflect.String {
		return from.Kind() == reflect.Slice // []byte and friends
	}
	return true
}
