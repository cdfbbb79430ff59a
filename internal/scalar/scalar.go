// Package scalar models the values accepted in a query's parameter map.
//
// Query parameters travel as JSON and are bound by name into the SQL
// statement, so only scalar values are meaningful: strings, numbers,
// booleans, null, and timestamps. Arrays and objects are rejected at
// decode time instead of being handed to the driver to guess at.
package scalar

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ErrNotScalar is returned when a parameter value is a JSON array or object.
var ErrNotScalar = errors.New("parameter values must be scalar (string, number, boolean or null)")

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Bool
	Time
)

// Value is a tagged scalar: exactly one variant is populated,
// selected by Kind.
//
// Numbers keep the integer/float distinction: integral JSON numbers
// bind as int64 so the driver sends them as integers, everything else
// binds as float64. Strings in full RFC 3339 form bind as time.Time so
// datetime columns compare correctly.
type Value struct {
	kind  Kind
	str   string
	i     int64
	f     float64
	isInt bool
	b     bool
	t     time.Time
}

// UnmarshalJSON decodes a single JSON value, rejecting composites.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty parameter value")
	}
	if trimmed[0] == '[' || trimmed[0] == '{' {
		return ErrNotScalar
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return errors.WithStack(err)
	}

	switch val := raw.(type) {
	case nil:
		v.kind = Null
	case bool:
		v.kind = Bool
		v.b = val
	case json.Number:
		v.kind = Number
		if i, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			v.i = i
			v.isInt = true
			return nil
		}
		f, err := val.Float64()
		if err != nil {
			return errors.WithStack(err)
		}
		v.f = f
	case string:
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			v.kind = Time
			v.t = ts
			return nil
		}
		v.kind = String
		v.str = val
	default:
		return ErrNotScalar
	}

	return nil
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Driver returns the value in the form handed to the SQL driver.
func (v Value) Driver() any {
	switch v.kind {
	case String:
		return v.str
	case Number:
		if v.isInt {
			return v.i
		}
		return v.f
	case Bool:
		return v.b
	case Time:
		return v.t
	default:
		return nil
	}
}
