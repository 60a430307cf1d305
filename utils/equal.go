package utils

import "reflect"

// DeepEqual compares two value trees structurally: maps by key (order-insensitive), slices and
// arrays position by position, structs field by exported field, everything else with ==.
//
// A nil pointer or nil interface is "absent", and absent is never equal to anything, not even
// another absent value.  Nil slices and maps are just empty collections.
//
// This is what decides whether an editing session has unsaved changes.
func DeepEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return false
	}
	return deepEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}

func deepEqual(v0, v1 reflect.Value) bool {
	if !v0.IsValid() || !v1.IsValid() {
		return false
	}
	if v0.Type() != v1.Type() {
		return false
	}

	switch v0.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v0.IsNil() || v1.IsNil() {
			return false
		}
		return deepEqual(v0.Elem(), v1.Elem())

	case reflect.Map:
		if v0.Len() != v1.Len() {
			return false
		}
		iter := v0.MapRange()
		for iter.Next() {
			other := v1.MapIndex(iter.Key())
			if !other.IsValid() || !deepEqual(iter.Value(), other) {
				return false
			}
		}
		return true

	case reflect.Slice, reflect.Array:
		if v0.Len() != v1.Len() {
			return false
		}
		for i := 0; i < v0.Len(); i++ {
			if !deepEqual(v0.Index(i), v1.Index(i)) {
				return false
			}
		}
		return true

	case reflect.Struct:
		t := v0.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if !deepEqual(v0.Field(i), v1.Field(i)) {
				return false
			}
		}
		return true

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		// No structure to compare
		return false
	}

	return v0.Interface() == v1.Interface()
}
