/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"strconv"
	"strings"
)

// Parameter names supplied by the host runtime.
const (
	ParamURI        = "mongo_uri"
	ParamDatabase   = "mongo_db"
	ParamCollection = "mongo_collection"
	ParamQuery      = "query" // strict extended JSON, keys double quoted
	ParamIDField    = "idField"
	ParamUseGridFS  = "useGridFS"
)

// Parameters resolves named configuration values and the optional time range
// of an enumeration. Time bounds are epoch milliseconds; 0 means unbounded.
type Parameters interface {
	Get(name string) Value
	StartOfTimeRange() int64
	EndOfTimeRange() int64
}

// Value is a single configuration value.
type Value struct {
	raw string
	set bool
}

// StringValue returns a set Value holding s.
func StringValue(s string) Value { return Value{raw: s, set: true} }

// String returns the value as text. Unset values are empty.
func (v Value) String() string { return v.raw }

// Bool parses the value as a boolean. Unset or unparsable values are false.
func (v Value) Bool() bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v.raw))
	return err == nil && b
}

// IsSet reports whether the parameter was supplied.
func (v Value) IsSet() bool { return v.set }

// MapParameters is a Parameters backed by a map.
type MapParameters struct {
	Values map[string]string
	Start  int64
	End    int64
}

// Get implements Parameters.
func (p MapParameters) Get(name string) Value {
	s, ok := p.Values[name]
	if !ok {
		return Value{}
	}
	return StringValue(s)
}

// StartOfTimeRange implements Parameters.
func (p MapParameters) StartOfTimeRange() int64 { return p.Start }

// EndOfTimeRange implements Parameters.
func (p MapParameters) EndOfTimeRange() int64 { return p.End }
