/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// assign stores v into dst. Back ends hand numbers back as float64, int64 or uint64,
// text-encoded values as strings and lists as []any, so those shapes are converted.
func assign[V any](dst *V, v any) error {
	if v == nil {
		var zero V
		*dst = zero
		return nil
	}
	if tv, ok := v.(V); ok {
		*dst = tv
		return nil
	}
	target := reflect.ValueOf(dst).Elem()
	converted, err := convertValue(reflect.ValueOf(v), target.Type())
	if err != nil {
		return err
	}
	target.Set(converted)
	return nil
}

func convertValue(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !rv.IsValid() {
		return reflect.Zero(t), nil
	}
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	switch {
	case rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer:
		if rv.IsNil() {
			return reflect.Zero(t), nil
		}
		if t.Kind() != reflect.Pointer {
			return convertValue(rv.Elem(), t)
		}
	case isNumber(rv.Kind()) && isNumber(t.Kind()):
		return convertNumber(rv, t)
	case rv.Kind() == reflect.String && t.Kind() == reflect.String:
		return rv.Convert(t), nil
	case rv.Kind() == reflect.String && reflect.PointerTo(t).Implements(textUnmarshalerType):
		out := reflect.New(t)
		if err := out.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(rv.String())); err != nil {
			return reflect.Value{}, fmt.Errorf("cannot decode %q as %s: %w", rv.String(), t, err)
		}
		return out.Elem(), nil
	case rv.Kind() == reflect.Slice && t.Kind() == reflect.Slice:
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := convertValue(rv.Index(i), t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	case rv.Kind() == reflect.Map && t.Kind() == reflect.Map:
		out := reflect.MakeMapWithSize(t, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := convertValue(iter.Key(), t.Key())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("map key: %w", err)
			}
			v, err := convertValue(iter.Value(), t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("map value %v: %w", iter.Key(), err)
			}
			out.SetMapIndex(k, v)
		}
		return out, nil
	case rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t):
		// e.g. strfmt.DateTime and time.Time share an underlying type
		return rv.Convert(t), nil
	}
	if t.Kind() == reflect.Pointer {
		inner, err := convertValue(rv, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t.Elem())
		out.Elem().Set(inner)
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", rv.Type(), t)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// convertNumber refuses conversions that would lose information.
func convertNumber(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch {
		case rv.CanInt():
			n = rv.Int()
		case rv.CanUint():
			u := rv.Uint()
			if u > math.MaxInt64 {
				return reflect.Value{}, fmt.Errorf("%d overflows %s", u, t)
			}
			n = int64(u)
		default:
			f := rv.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 {
				return reflect.Value{}, fmt.Errorf("%v is not representable as %s", f, t)
			}
			n = int64(f)
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, t)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		switch {
		case rv.CanUint():
			n = rv.Uint()
		case rv.CanInt():
			i := rv.Int()
			if i < 0 {
				return reflect.Value{}, fmt.Errorf("%d is negative, want %s", i, t)
			}
			n = uint64(i)
		default:
			f := rv.Float()
			if f != math.Trunc(f) || f < 0 || f >= 1<<64 {
				return reflect.Value{}, fmt.Errorf("%v is not representable as %s", f, t)
			}
			n = uint64(f)
		}
		if out.OverflowUint(n) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, t)
		}
		out.SetUint(n)
	default:
		var f float64
		switch {
		case rv.CanInt():
			f = float64(rv.Int())
		case rv.CanUint():
			f = float64(rv.Uint())
		default:
			f = rv.Float()
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", f, t)
		}
		out.SetFloat(f)
	}
	return out, nil
}
