// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License, Version 2.0.
// Copyright 2026 The emit-go Authors.

package emit

import (
	"fmt"
	"reflect"
	"strconv"
)

// valueKind tags the primitive representation a Value was captured as, so the
// common coercions (ToInt64, ToFloat64, ToString, ...) avoid a type switch on
// the boxed interface for the cases that matter on the hot path.
type valueKind uint8

const (
	kindEmpty valueKind = iota
	kindBool
	kindI64
	kindU64
	kindF64
	kindString
	kindAny
)

// Value is a type-erased, lossless capture of a scalar or structured property
// value. It always records enough to downcast back to the captured type:
// Capture(x).Downcast[T]() succeeds for any T the value was captured from.
//
// A Value captured via Capture borrows nothing special in Go (everything
// that crosses an interface{} boundary is already heap-visible to the
// garbage collector) but still separates the "which representation did the
// caller have" question from "what's the cheapest way to render/coerce it".
type Value struct {
	kind valueKind
	b    bool
	i64  int64
	u64  uint64
	f64  float64
	s    string
	v    any
	typ  reflect.Type
}

// Capture selects the lossless representation for v: numeric and string
// primitives get a tagged-union fast path, everything else is boxed and
// tagged with its concrete type for later downcast.
func Capture(v any) Value {
	if v == nil {
		return Value{}
	}
	switch x := v.(type) {
	case bool:
		return Value{kind: kindBool, b: x, v: v, typ: reflect.TypeOf(x)}
	case int:
		return Value{kind: kindI64, i64: int64(x), v: v, typ: reflect.TypeOf(x)}
	case int8:
		return Value{kind: kindI64, i64: int64(x), v: v, typ: reflect.TypeOf(x)}
	case int16:
		return Value{kind: kindI64, i64: int64(x), v: v, typ: reflect.TypeOf(x)}
	case int32:
		return Value{kind: kindI64, i64: int64(x), v: v, typ: reflect.TypeOf(x)}
	case int64:
		return Value{kind: kindI64, i64: x, v: v, typ: reflect.TypeOf(x)}
	case uint:
		return Value{kind: kindU64, u64: uint64(x), v: v, typ: reflect.TypeOf(x)}
	case uint8:
		return Value{kind: kindU64, u64: uint64(x), v: v, typ: reflect.TypeOf(x)}
	case uint16:
		return Value{kind: kindU64, u64: uint64(x), v: v, typ: reflect.TypeOf(x)}
	case uint32:
		return Value{kind: kindU64, u64: uint64(x), v: v, typ: reflect.TypeOf(x)}
	case uint64:
		return Value{kind: kindU64, u64: x, v: v, typ: reflect.TypeOf(x)}
	case float32:
		return Value{kind: kindF64, f64: float64(x), v: v, typ: reflect.TypeOf(x)}
	case float64:
		return Value{kind: kindF64, f64: x, v: v, typ: reflect.TypeOf(x)}
	case string:
		return Value{kind: kindString, s: x, v: v, typ: reflect.TypeOf(x)}
	default:
		return Value{kind: kindAny, v: v, typ: reflect.TypeOf(v)}
	}
}

// CaptureDisplay captures v via its fmt.Stringer rendering, for types that
// only expose a Display-like representation.
func CaptureDisplay(v fmt.Stringer) Value {
	return Value{kind: kindString, s: v.String(), v: v, typ: reflect.TypeOf(v)}
}

// Empty reports whether the value is the zero Value (no capture happened).
func (v Value) Empty() bool { return v.kind == kindEmpty && v.v == nil }

// Any returns the boxed representation of the captured value.
func (v Value) Any() any { return v.v }

// Downcast reports whether v was captured from a T, returning the value if so.
func Downcast[T any](v Value) (T, bool) {
	var zero T
	x, ok := v.v.(T)
	if !ok {
		return zero, false
	}
	return x, true
}

// ToInt64 best-effort coerces v to an int64.
func (v Value) ToInt64() (int64, bool) {
	switch v.kind {
	case kindI64:
		return v.i64, true
	case kindU64:
		return int64(v.u64), true
	case kindF64:
		return int64(v.f64), true
	case kindString:
		n, err := strconv.ParseInt(v.s, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// ToFloat64 best-effort coerces v to a float64.
func (v Value) ToFloat64() (float64, bool) {
	switch v.kind {
	case kindF64:
		return v.f64, true
	case kindI64:
		return float64(v.i64), true
	case kindU64:
		return float64(v.u64), true
	case kindString:
		f, err := strconv.ParseFloat(v.s, 64)
		return f, err == nil
	}
	return 0, false
}

// ToBool best-effort coerces v to a bool.
func (v Value) ToBool() (bool, bool) {
	switch v.kind {
	case kindBool:
		return v.b, true
	case kindString:
		b, err := strconv.ParseBool(v.s)
		return b, err == nil
	}
	return false, false
}

// ToString renders v as a string, using the fast tagged-union path for
// primitives and fmt.Sprint for everything else.
func (v Value) ToString() (string, bool) {
	switch v.kind {
	case kindEmpty:
		return "", false
	case kindBool:
		return strconv.FormatBool(v.b), true
	case kindI64:
		return strconv.FormatInt(v.i64, 10), true
	case kindU64:
		return strconv.FormatUint(v.u64, 10), true
	case kindF64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64), true
	case kindString:
		return v.s, true
	default:
		return fmt.Sprint(v.v), true
	}
}

// Parse attempts to downcast v to T directly, falling back to a best-effort
// numeric/bool coercion (the same ones ToInt64/ToFloat64/ToBool expose) for
// the common scalar kinds, so Parse[int64] over a Value captured from a
// string "42" still succeeds instead of requiring an exact int64 capture.
// T = string is exact-downcast only: a non-string Value stringifies via
// ToString, but that's a rendering, not a parse, so it is not folded
// in here.
func Parse[T any](v Value) (T, bool) {
	if x, ok := Downcast[T](v); ok {
		return x, true
	}
	var zero T
	switch any(zero).(type) {
	case bool:
		if b, ok := v.ToBool(); ok {
			return any(b).(T), true
		}
	case int:
		if i, ok := v.ToInt64(); ok {
			return any(int(i)).(T), true
		}
	case int8:
		if i, ok := v.ToInt64(); ok {
			return any(int8(i)).(T), true
		}
	case int16:
		if i, ok := v.ToInt64(); ok {
			return any(int16(i)).(T), true
		}
	case int32:
		if i, ok := v.ToInt64(); ok {
			return any(int32(i)).(T), true
		}
	case int64:
		if i, ok := v.ToInt64(); ok {
			return any(i).(T), true
		}
	case uint:
		if i, ok := v.ToInt64(); ok {
			return any(uint(i)).(T), true
		}
	case uint64:
		if i, ok := v.ToInt64(); ok {
			return any(uint64(i)).(T), true
		}
	case float32:
		if f, ok := v.ToFloat64(); ok {
			return any(float32(f)).(T), true
		}
	case float64:
		if f, ok := v.ToFloat64(); ok {
			return any(f).(T), true
		}
	}
	return zero, false
}

// Type returns the captured value's concrete type, or nil for an empty Value.
func (v Value) Type() reflect.Type { return v.typ }

// String implements fmt.Stringer by rendering the value for display.
func (v Value) String() string {
	s, _ := v.ToString()
	return s
}

// OwnedValue is a Value that has been detached for retention past the scope
// that produced it (context frames, and events crossing into the batching
// channel both need this). In Go, Capture already boxes into the GC heap, so
// ToOwned is mostly a documentation boundary marking the owned/borrowed
// transition rather than a deep copy — except for the rare case of a value
// wrapping a mutable buffer, where callers should capture a copy before
// calling ToOwned.
type OwnedValue struct {
	Value
}

// ToOwned detaches v into an OwnedValue safe to retain.
func (v Value) ToOwned() OwnedValue { return OwnedValue{v} }

// AsValue reborrows an OwnedValue as a Value.
func (v OwnedValue) AsValue() Value { return v.Value }
