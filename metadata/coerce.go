/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coerce returns the canonical text of v. The boolean is false only for the
// unset variant, which has no text form.
func Coerce(v Value) (string, bool) {
	switch v.kind {
	case KindString, KindLongString:
		return v.s, true
	case KindInteger, KindLong:
		return strconv.FormatInt(v.i, 10), true
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64), true
	case KindDecimal:
		return v.dec.String(), true
	case KindBoolean:
		return strconv.FormatBool(v.b), true
	case KindBytes:
		return hex.EncodeToString(v.raw), true
	case KindTimestamp:
		return FormatInstant(v.ts.AsTime()), true
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			s, ok := Coerce(e)
			if !ok {
				s = "null"
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", true
	default:
		return "", false
	}
}

// FormatInstant renders t in UTC as 2006-01-02T15:04:05Z with the fraction of
// a second printed in groups of three digits and omitted when zero.
func FormatInstant(t time.Time) string {
	t = t.UTC()
	var sb strings.Builder
	sb.WriteString(t.Format("2006-01-02T15:04:05"))
	if ns := t.Nanosecond(); ns > 0 {
		frac := fmt.Sprintf("%09d", ns)
		for strings.HasSuffix(frac, "000") {
			frac = frac[:len(frac)-3]
		}
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	sb.WriteByte('Z')
	return sb.String()
}

// FromNative wraps a value read from the store as a string value. Every store
// type is flattened to text; metadata read back from the store is never typed.
func FromNative(v any) Value {
	return String(Stringify(v))
}

// Stringify renders a store-native value as text.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return FormatInstant(x.Time())
	case time.Time:
		return FormatInstant(x)
	case primitive.Timestamp:
		return FormatInstant(time.Unix(int64(x.T), 0))
	case primitive.Decimal128:
		return x.String()
	case primitive.Binary:
		return hex.EncodeToString(x.Data)
	case []byte:
		return hex.EncodeToString(x)
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case primitive.Null, primitive.Undefined:
		return "null"
	case primitive.Symbol:
		return string(x)
	case primitive.Regex:
		return x.String()
	case primitive.A:
		return stringifyList([]any(x))
	case []any:
		return stringifyList(x)
	case primitive.D, primitive.M, map[string]any:
		b, err := bson.MarshalExtJSON(x, false, false)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

func stringifyList(items []any) string {
	parts := make([]string, len(items))
	for i, e := range items {
		parts[i] = Stringify(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
