package otsstore

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/acksell/otskit/tablestore/otsprotocol"
)

// Key encoding for BadgerDB that preserves primary key order.
//
// Table metadata: "m" + table name.
// Rows:           "r" + escaped table name + 0x00 + encoded key columns.
//
// Each key column starts with a tag byte. The boundless markers take the
// lowest and highest tags, so a range boundary holding INF_MIN or INF_MAX
// encodes to a key that sorts before or after every concrete value and
// range scans need no special casing.
const (
	keySeparator byte = 0x00

	tagInfMin  byte = 0x00
	tagInteger byte = 0x10
	tagString  byte = 0x20
	tagBinary  byte = 0x30
	tagInfMax  byte = 0xFF
)

var (
	metaPrefix = []byte("m")
	rowPrefix  = []byte("r")
)

func metaKey(table string) []byte {
	return append(bytes.Clone(metaPrefix), table...)
}

// tablePrefix returns the prefix shared by all rows of table.
func tablePrefix(table string) []byte {
	var buf bytes.Buffer
	buf.Write(rowPrefix)
	buf.Write(escapeBytes([]byte(table)))
	buf.WriteByte(keySeparator)
	return buf.Bytes()
}

// rowKey encodes a primary key, or a range boundary, of table.
func rowKey(table string, pk []*otsprotocol.Column) ([]byte, error) {
	key := tablePrefix(table)
	for _, col := range pk {
		var err error
		key, err = appendKeyColumn(key, col.Value)
		if err != nil {
			return nil, fmt.Errorf("encode key column %q: %w", col.Name, err)
		}
	}
	return key, nil
}

func appendKeyColumn(b []byte, v *otsprotocol.ColumnValue) ([]byte, error) {
	switch v.Type {
	case otsprotocol.ColumnTypeInfMin:
		return append(b, tagInfMin), nil
	case otsprotocol.ColumnTypeInfMax:
		return append(b, tagInfMax), nil
	case otsprotocol.ColumnTypeInteger:
		b = append(b, tagInteger)
		// Flipping the sign bit makes two's complement sort as unsigned.
		return binary.BigEndian.AppendUint64(b, uint64(*v.VInt)^(1<<63)), nil
	case otsprotocol.ColumnTypeString:
		b = append(b, tagString)
		b = append(b, escapeBytes([]byte(*v.VString))...)
		return append(b, keySeparator), nil
	case otsprotocol.ColumnTypeBinary:
		b = append(b, tagBinary)
		b = append(b, escapeBytes(v.VBinary)...)
		return append(b, keySeparator), nil
	default:
		return nil, fmt.Errorf("type %v cannot be part of a primary key", v.Type)
	}
}

// escapeBytes escapes 0x00 so it can terminate a variable length component.
// Uses 0x01 0x01 for literal 0x00, and 0x01 0x02 for literal 0x01, which
// keeps byte order intact.
func escapeBytes(b []byte) []byte {
	var buf bytes.Buffer
	for _, c := range b {
		switch c {
		case 0x00:
			buf.WriteByte(0x01)
			buf.WriteByte(0x01)
		case 0x01:
			buf.WriteByte(0x01)
			buf.WriteByte(0x02)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes()
}

func encodeRow(pk, attrs []*otsprotocol.Column) []byte {
	return otsprotocol.Marshal(&otsprotocol.Row{PrimaryKeyColumns: pk, AttributeColumns: attrs})
}

func decodeRow(val []byte) (*otsprotocol.Row, error) {
	var row otsprotocol.Row
	if err := row.Unmarshal(val); err != nil {
		return nil, fmt.Errorf("decode stored row: %w", err)
	}
	return &row, nil
}
