// Package otsprotocol is the wire schema spoken between the driver and the
// table store: protobuf (proto2) messages, one Go struct per message, with
// marshalling written directly against protowire.
//
// Unknown fields are skipped on decode. A known field arriving with a wire
// type other than the declared one is a decode error.
package otsprotocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every type in this package that has a wire form.
type Message interface {
	appendTo(b []byte) []byte
	Unmarshal(b []byte) error
}

// Marshal returns the wire encoding of m.
func Marshal(m Message) []byte {
	return m.appendTo(nil)
}

// Unmarshal decodes b into m, replacing its previous contents.
func Unmarshal(b []byte, m Message) error {
	return m.Unmarshal(b)
}

// Text renders m for trace logs.
func Text(m Message) string {
	out, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("%+v", m)
	}
	return string(out)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	return appendVarint(b, num, uint64(v))
}

// int32 and enums are sign extended, matching protobuf's int32 encoding.
func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	return appendBytes(b, num, m.appendTo(nil))
}

func appendMessages[M Message](b []byte, num protowire.Number, ms []M) []byte {
	for _, m := range ms {
		b = appendMessage(b, num, m)
	}
	return b
}

func appendStrings(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = appendString(b, num, s)
	}
	return b
}

// decoder walks the fields of one message. The first error stops the walk and
// is kept in err.
type decoder struct {
	b   []byte
	num protowire.Number
	typ protowire.Type
	err error
}

func newDecoder(b []byte) *decoder {
	return &decoder{b: b}
}

func (d *decoder) next() bool {
	if d.err != nil || len(d.b) == 0 {
		return false
	}
	num, typ, n := protowire.ConsumeTag(d.b)
	if n < 0 {
		d.err = protowire.ParseError(n)
		return false
	}
	d.b = d.b[n:]
	d.num, d.typ = num, typ
	return true
}

func (d *decoder) fail(n int) {
	d.err = fmt.Errorf("field %d: %w", d.num, protowire.ParseError(n))
}

func (d *decoder) expect(typ protowire.Type) bool {
	if d.err != nil {
		return false
	}
	if d.typ != typ {
		d.err = fmt.Errorf("field %d: wire type %d, want %d", d.num, d.typ, typ)
		return false
	}
	return true
}

func (d *decoder) uvarint() uint64 {
	if !d.expect(protowire.VarintType) {
		return 0
	}
	v, n := protowire.ConsumeVarint(d.b)
	if n < 0 {
		d.fail(n)
		return 0
	}
	d.b = d.b[n:]
	return v
}

func (d *decoder) i64() int64 { return int64(d.uvarint()) }

func (d *decoder) i32() int32 { return int32(d.uvarint()) }

func (d *decoder) boolean() bool { return protowire.DecodeBool(d.uvarint()) }

func (d *decoder) f64() float64 {
	if !d.expect(protowire.Fixed64Type) {
		return 0
	}
	v, n := protowire.ConsumeFixed64(d.b)
	if n < 0 {
		d.fail(n)
		return 0
	}
	d.b = d.b[n:]
	return math.Float64frombits(v)
}

func (d *decoder) raw() []byte {
	if !d.expect(protowire.BytesType) {
		return nil
	}
	v, n := protowire.ConsumeBytes(d.b)
	if n < 0 {
		d.fail(n)
		return nil
	}
	d.b = d.b[n:]
	return v
}

// blob returns a copy so decoded messages never alias the input buffer.
func (d *decoder) blob() []byte {
	v := d.raw()
	if v == nil {
		return nil
	}
	return bytes.Clone(v)
}

func (d *decoder) str() string { return string(d.raw()) }

func (d *decoder) msg(m Message) {
	v := d.raw()
	if d.err != nil {
		return
	}
	if err := m.Unmarshal(v); err != nil {
		d.err = fmt.Errorf("field %d: %w", d.num, err)
	}
}

func (d *decoder) skip() {
	n := protowire.ConsumeFieldValue(d.num, d.typ, d.b)
	if n < 0 {
		d.fail(n)
		return
	}
	d.b = d.b[n:]
}

// readMessage decodes the current field into a fresh *T.
func readMessage[T any, PT interface {
	*T
	Message
}](d *decoder) PT {
	p := PT(new(T))
	d.msg(p)
	return p
}
