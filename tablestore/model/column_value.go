// Package model holds the value types callers build requests from and read
// responses into: column values, primary keys, table metadata, conditions and
// query criteria. All of them are plain values with no I/O.
package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

type ColumnValueType int

const (
	ColumnValueTypeInteger ColumnValueType = iota + 1
	ColumnValueTypeString
	ColumnValueTypeBoolean
	ColumnValueTypeDouble
	ColumnValueTypeBinary
	// Boundless markers. Only valid inside range scan boundaries.
	ColumnValueTypeInfMin
	ColumnValueTypeInfMax
)

func (t ColumnValueType) String() string {
	switch t {
	case ColumnValueTypeInteger:
		return "INTEGER"
	case ColumnValueTypeString:
		return "STRING"
	case ColumnValueTypeBoolean:
		return "BOOLEAN"
	case ColumnValueTypeDouble:
		return "DOUBLE"
	case ColumnValueTypeBinary:
		return "BINARY"
	case ColumnValueTypeInfMin:
		return "INF_MIN"
	case ColumnValueTypeInfMax:
		return "INF_MAX"
	default:
		return "ColumnValueType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ColumnValue is an immutable tagged scalar. Construct it with one of the
// constructor functions; the zero value has no type and is rejected by the
// encoder.
type ColumnValue struct {
	typ ColumnValueType
	i   int64
	s   string
	b   bool
	d   float64
	bin []byte
}

var (
	// InfMin sorts before every concrete value of a key column.
	InfMin = ColumnValue{typ: ColumnValueTypeInfMin}
	// InfMax sorts after every concrete value of a key column.
	InfMax = ColumnValue{typ: ColumnValueTypeInfMax}
)

func IntegerValue(v int64) ColumnValue { return ColumnValue{typ: ColumnValueTypeInteger, i: v} }

func StringValue(v string) ColumnValue { return ColumnValue{typ: ColumnValueTypeString, s: v} }

func BooleanValue(v bool) ColumnValue { return ColumnValue{typ: ColumnValueTypeBoolean, b: v} }

func DoubleValue(v float64) ColumnValue { return ColumnValue{typ: ColumnValueTypeDouble, d: v} }

// BinaryValue copies v so later writes to the caller's slice are not observed.
func BinaryValue(v []byte) ColumnValue {
	return ColumnValue{typ: ColumnValueTypeBinary, bin: bytes.Clone(v)}
}

func (v ColumnValue) Type() ColumnValueType { return v.typ }

// IsBoundless reports whether v is InfMin or InfMax.
func (v ColumnValue) IsBoundless() bool {
	return v.typ == ColumnValueTypeInfMin || v.typ == ColumnValueTypeInfMax
}

func (v ColumnValue) Integer() int64 { return v.i }

func (v ColumnValue) String() string {
	switch v.typ {
	case ColumnValueTypeInteger:
		return strconv.FormatInt(v.i, 10)
	case ColumnValueTypeString:
		return v.s
	case ColumnValueTypeBoolean:
		return strconv.FormatBool(v.b)
	case ColumnValueTypeDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case ColumnValueTypeBinary:
		return fmt.Sprintf("%x", v.bin)
	case ColumnValueTypeInfMin, ColumnValueTypeInfMax:
		return v.typ.String()
	default:
		return "<invalid>"
	}
}

// StringValue returns the payload of a STRING value. Use String for a
// printable rendering of any value.
func (v ColumnValue) StringValue() string { return v.s }

func (v ColumnValue) Boolean() bool { return v.b }

func (v ColumnValue) Double() float64 { return v.d }

// Binary returns a copy of the payload.
func (v ColumnValue) Binary() []byte { return bytes.Clone(v.bin) }

// Equal compares concrete values by type and payload. Sentinels are equal only
// to themselves. Doubles compare by bit pattern so NaN equals NaN.
func (v ColumnValue) Equal(o ColumnValue) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case ColumnValueTypeInteger:
		return v.i == o.i
	case ColumnValueTypeString:
		return v.s == o.s
	case ColumnValueTypeBoolean:
		return v.b == o.b
	case ColumnValueTypeDouble:
		return math.Float64bits(v.d) == math.Float64bits(o.d)
	case ColumnValueTypeBinary:
		return bytes.Equal(v.bin, o.bin)
	default:
		return true
	}
}
