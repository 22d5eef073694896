/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindInvalid is the unset variant. The zero Value has this kind.
	KindInvalid Kind = iota
	// KindString is a short string.
	KindString
	// KindLongString is an unbounded string.
	KindLongString
	// KindInteger is a 32-bit integer.
	KindInteger
	// KindLong is a 64-bit integer.
	KindLong
	// KindDouble is a 64-bit float.
	KindDouble
	// KindDecimal is a 128-bit decimal.
	KindDecimal
	// KindBoolean is a boolean.
	KindBoolean
	// KindBytes is a raw byte sequence.
	KindBytes
	// KindTimestamp is a point in time with nanosecond precision.
	KindTimestamp
	// KindArray is an ordered list of values.
	KindArray
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindString:     "string",
	KindLongString: "long_string",
	KindInteger:    "integer",
	KindLong:       "long",
	KindDouble:     "double",
	KindDecimal:    "decimal",
	KindBoolean:    "boolean",
	KindBytes:      "bytes",
	KindTimestamp:  "timestamp",
	KindArray:      "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is a metadata value holding exactly one variant.
//
// Values are built with the constructors below; the fields are unexported so
// that a Value never carries more than one variant.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	dec  primitive.Decimal128
	raw  []byte
	ts   *timestamppb.Timestamp
	arr  []Value
}

// String returns a short string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// LongString returns a long string value.
func LongString(s string) Value { return Value{kind: KindLongString, s: s} }

// Integer returns a 32-bit integer value.
func Integer(i int32) Value { return Value{kind: KindInteger, i: int64(i)} }

// Long returns a 64-bit integer value.
func Long(i int64) Value { return Value{kind: KindLong, i: i} }

// Double returns a float value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// Decimal returns a decimal value.
func Decimal(d primitive.Decimal128) Value { return Value{kind: KindDecimal, dec: d} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Bytes returns a byte sequence value. The slice is copied.
func Bytes(p []byte) Value {
	return Value{kind: KindBytes, raw: append([]byte(nil), p...)}
}

// Timestamp returns a timestamp value. A nil timestamp yields the unset value.
func Timestamp(ts *timestamppb.Timestamp) Value {
	if ts == nil {
		return Value{}
	}
	return Value{kind: KindTimestamp, ts: ts}
}

// Time returns a timestamp value for t.
func Time(t time.Time) Value { return Timestamp(timestamppb.New(t)) }

// Array returns an array value.
func Array(values ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value(nil), values...)}
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether a variant is active.
func (v Value) IsSet() bool { return v.kind != KindInvalid }

// AsString returns the value of a string or long string variant.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString && v.kind != KindLongString {
		return "", false
	}
	return v.s, true
}

// AsInt64 returns the value of an integer or long variant.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInteger && v.kind != KindLong {
		return 0, false
	}
	return v.i, true
}

// AsFloat64 returns the value of a double variant.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.f, true
}

// AsBool returns the value of a boolean variant.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

// AsBytes returns the value of a byte sequence variant.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.raw, true
}

// AsTime returns the value of a timestamp variant.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTimestamp {
		return time.Time{}, false
	}
	return v.ts.AsTime(), true
}

// AsArray returns the elements of an array variant.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Map is a set of named metadata values.
type Map map[string]Value

// Strings coerces every value of m. Names whose value is unset are returned in
// missing and mapped to nothing in the result.
func (m Map) Strings() (values map[string]string, missing []string) {
	values = make(map[string]string, len(m))
	for name, v := range m {
		s, ok := Coerce(v)
		if !ok {
			missing = append(missing, name)
			continue
		}
		values[name] = s
	}
	return values, missing
}
