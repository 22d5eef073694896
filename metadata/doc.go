// Package metadata provides the typed metadata value model of the connector.
//
// # Value Variants
//
// A Value holds exactly one of:
//
//   - String / LongString: metadata.String("finance")
//   - Integer / Long: metadata.Long(2024)
//   - Double: metadata.Double(3.14)
//   - Decimal: metadata.Decimal(d)
//   - Boolean: metadata.Boolean(true)
//   - Bytes: metadata.Bytes([]byte{0xca, 0xfe})
//   - Timestamp: metadata.Time(t)
//   - Array: metadata.Array(metadata.String("a"), metadata.Long(1))
//
// The zero Value is unset. It is the only value without a text form.
//
// # Coercion
//
// The store keeps metadata as text. Coerce maps every variant to its canonical
// text: numbers and booleans in their shortest round-trip form, bytes as
// lowercase hex, timestamps as ISO-8601 UTC and arrays as "[a, b]". On the read
// side FromNative flattens whatever the store returns back into a string value,
// so metadata round-trips as text rather than as typed values.
//
//	md := metadata.Map{
//	    "year":     metadata.Integer(2024),
//	    "checksum": metadata.Bytes(sum),
//	}
//	values, missing := md.Strings()
package metadata
