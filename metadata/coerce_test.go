/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCoerce(t *testing.T) {
	dec, err := primitive.ParseDecimal128("12.50")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "string", value: String("finance"), want: "finance"},
		{name: "empty string", value: String(""), want: ""},
		{name: "long string", value: LongString("a much longer text"), want: "a much longer text"},
		{name: "integer", value: Integer(-42), want: "-42"},
		{name: "long", value: Long(9007199254740993), want: "9007199254740993"},
		{name: "double", value: Double(3.25), want: "3.25"},
		{name: "whole double", value: Double(1), want: "1"},
		{name: "large double", value: Double(1e21), want: "1e+21"},
		{name: "decimal", value: Decimal(dec), want: "12.50"},
		{name: "boolean true", value: Boolean(true), want: "true"},
		{name: "boolean false", value: Boolean(false), want: "false"},
		{name: "bytes", value: Bytes([]byte{0xCA, 0xFE, 0x01}), want: "cafe01"},
		{name: "empty bytes", value: Bytes(nil), want: ""},
		{
			name:  "timestamp seconds",
			value: Timestamp(&timestamppb.Timestamp{Seconds: 1700000000}),
			want:  "2023-11-14T22:13:20Z",
		},
		{
			name:  "timestamp millis",
			value: Timestamp(&timestamppb.Timestamp{Seconds: 1700000000, Nanos: 500000000}),
			want:  "2023-11-14T22:13:20.500Z",
		},
		{
			name:  "timestamp micros",
			value: Timestamp(&timestamppb.Timestamp{Seconds: 1700000000, Nanos: 1000}),
			want:  "2023-11-14T22:13:20.000001Z",
		},
		{
			name:  "timestamp nanos",
			value: Timestamp(&timestamppb.Timestamp{Seconds: 1700000000, Nanos: 123456789}),
			want:  "2023-11-14T22:13:20.123456789Z",
		},
		{
			name:  "array",
			value: Array(String("a"), Long(2), Boolean(true)),
			want:  "[a, 2, true]",
		},
		{name: "empty array", value: Array(), want: "[]"},
		{
			name:  "array with unset element",
			value: Array(String("a"), Value{}),
			want:  "[a, null]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Coerce(tt.value)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceUnset(t *testing.T) {
	got, ok := Coerce(Value{})
	assert.False(t, ok)
	assert.Empty(t, got)

	_, ok = Coerce(Timestamp(nil))
	assert.False(t, ok, "nil timestamp must be unset, not empty text")
}

func TestFormatInstantConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, "2024-03-01T10:00:00Z", FormatInstant(ts))
}

func TestKindExactlyOneVariant(t *testing.T) {
	values := []Value{
		String("x"), LongString("x"), Integer(1), Long(1), Double(1),
		Decimal(primitive.NewDecimal128(0, 1)), Boolean(true), Bytes([]byte{1}),
		Time(time.Unix(0, 0)), Array(),
	}
	seen := make(map[Kind]bool)
	for _, v := range values {
		require.True(t, v.IsSet())
		require.False(t, seen[v.Kind()], "duplicate kind %s", v.Kind())
		seen[v.Kind()] = true
	}
	assert.False(t, Value{}.IsSet())
	assert.Equal(t, KindInvalid, Value{}.Kind())
}

func TestAccessors(t *testing.T) {
	s, ok := LongString("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = Long(1).AsString()
	assert.False(t, ok)

	i, ok := Integer(7).AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	raw := []byte{1, 2}
	v := Bytes(raw)
	raw[0] = 9
	got, _ := v.AsBytes()
	assert.Equal(t, []byte{1, 2}, got, "Bytes must copy its input")

	ts, ok := Time(time.Unix(10, 0)).AsTime()
	assert.True(t, ok)
	assert.Equal(t, int64(10), ts.Unix())
}

func TestMapStrings(t *testing.T) {
	md := Map{
		"year":    Integer(2024),
		"flag":    Boolean(false),
		"missing": {},
	}
	values, missing := md.Strings()
	assert.Equal(t, map[string]string{"year": "2024", "flag": "false"}, values)
	sort.Strings(missing)
	assert.Equal(t, []string{"missing"}, missing)
}

func TestStringify(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4b")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "null"},
		{name: "string", in: "abc", want: "abc"},
		{name: "object id", in: oid, want: "65a1b2c3d4e5f60718293a4b"},
		{name: "datetime", in: primitive.NewDateTimeFromTime(time.Unix(1700000000, 0)), want: "2023-11-14T22:13:20Z"},
		{name: "int32", in: int32(5), want: "5"},
		{name: "int64", in: int64(1024), want: "1024"},
		{name: "double", in: 0.5, want: "0.5"},
		{name: "bool", in: true, want: "true"},
		{name: "binary", in: primitive.Binary{Data: []byte{0xab}}, want: "ab"},
		{name: "array", in: bson.A{"a", int32(1)}, want: "[a, 1]"},
		{name: "embedded", in: bson.D{{Key: "k", Value: "v"}}, want: `{"k":"v"}`},
		{name: "null", in: primitive.Null{}, want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.in))
			v := FromNative(tt.in)
			assert.Equal(t, KindString, v.Kind())
		})
	}
}
