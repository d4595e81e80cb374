package otsprotocol

import (
	"errors"
)

type ColumnSchema struct {
	Name string
	Type ColumnType
}

func (m *ColumnSchema) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	return appendInt32(b, 2, int32(m.Type))
}

func (m *ColumnSchema) Unmarshal(b []byte) error {
	*m = ColumnSchema{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Name = d.str()
		case 2:
			m.Type = ColumnType(d.i32())
		default:
			d.skip()
		}
	}
	return d.err
}

// ColumnValue carries at most one payload field, selected by Type. INF_MIN
// and INF_MAX carry none.
type ColumnValue struct {
	Type    ColumnType
	VInt    *int64
	VString *string
	VBool   *bool
	VDouble *float64
	VBinary []byte
}

func (m *ColumnValue) appendTo(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Type))
	if m.VInt != nil {
		b = appendInt64(b, 2, *m.VInt)
	}
	if m.VString != nil {
		b = appendString(b, 3, *m.VString)
	}
	if m.VBool != nil {
		b = appendBool(b, 4, *m.VBool)
	}
	if m.VDouble != nil {
		b = appendDouble(b, 5, *m.VDouble)
	}
	if m.VBinary != nil {
		b = appendBytes(b, 6, m.VBinary)
	}
	return b
}

func (m *ColumnValue) Unmarshal(b []byte) error {
	*m = ColumnValue{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Type = ColumnType(d.i32())
		case 2:
			v := d.i64()
			m.VInt = &v
		case 3:
			v := d.str()
			m.VString = &v
		case 4:
			v := d.boolean()
			m.VBool = &v
		case 5:
			v := d.f64()
			m.VDouble = &v
		case 6:
			m.VBinary = d.blob()
			if m.VBinary == nil && d.err == nil {
				m.VBinary = []byte{}
			}
		default:
			d.skip()
		}
	}
	return d.err
}

type Column struct {
	Name  string
	Value *ColumnValue
}

func (m *Column) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	if m.Value != nil {
		b = appendMessage(b, 2, m.Value)
	}
	return b
}

func (m *Column) Unmarshal(b []byte) error {
	*m = Column{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Name = d.str()
		case 2:
			m.Value = readMessage[ColumnValue](d)
		default:
			d.skip()
		}
	}
	if d.err == nil && m.Value == nil {
		return errors.New("column " + m.Name + ": missing value")
	}
	return d.err
}

type Row struct {
	PrimaryKeyColumns []*Column
	AttributeColumns  []*Column
}

func (m *Row) appendTo(b []byte) []byte {
	b = appendMessages(b, 1, m.PrimaryKeyColumns)
	return appendMessages(b, 2, m.AttributeColumns)
}

func (m *Row) Unmarshal(b []byte) error {
	*m = Row{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.PrimaryKeyColumns = append(m.PrimaryKeyColumns, readMessage[Column](d))
		case 2:
			m.AttributeColumns = append(m.AttributeColumns, readMessage[Column](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type TableMeta struct {
	TableName  string
	PrimaryKey []*ColumnSchema
}

func (m *TableMeta) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	return appendMessages(b, 2, m.PrimaryKey)
}

func (m *TableMeta) Unmarshal(b []byte) error {
	*m = TableMeta{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[ColumnSchema](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type CapacityUnit struct {
	Read  *int32
	Write *int32
}

func (m *CapacityUnit) appendTo(b []byte) []byte {
	if m.Read != nil {
		b = appendInt32(b, 1, *m.Read)
	}
	if m.Write != nil {
		b = appendInt32(b, 2, *m.Write)
	}
	return b
}

func (m *CapacityUnit) Unmarshal(b []byte) error {
	*m = CapacityUnit{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			v := d.i32()
			m.Read = &v
		case 2:
			v := d.i32()
			m.Write = &v
		default:
			d.skip()
		}
	}
	return d.err
}

type ReservedThroughput struct {
	CapacityUnit *CapacityUnit
}

func (m *ReservedThroughput) appendTo(b []byte) []byte {
	if m.CapacityUnit != nil {
		b = appendMessage(b, 1, m.CapacityUnit)
	}
	return b
}

func (m *ReservedThroughput) Unmarshal(b []byte) error {
	*m = ReservedThroughput{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.CapacityUnit = readMessage[CapacityUnit](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type ReservedThroughputDetails struct {
	CapacityUnit           *CapacityUnit
	LastIncreaseTime       int64
	LastDecreaseTime       *int64
	NumberOfDecreasesToday int32
}

func (m *ReservedThroughputDetails) appendTo(b []byte) []byte {
	if m.CapacityUnit != nil {
		b = appendMessage(b, 1, m.CapacityUnit)
	}
	b = appendInt64(b, 2, m.LastIncreaseTime)
	if m.LastDecreaseTime != nil {
		b = appendInt64(b, 3, *m.LastDecreaseTime)
	}
	return appendInt32(b, 4, m.NumberOfDecreasesToday)
}

func (m *ReservedThroughputDetails) Unmarshal(b []byte) error {
	*m = ReservedThroughputDetails{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.CapacityUnit = readMessage[CapacityUnit](d)
		case 2:
			m.LastIncreaseTime = d.i64()
		case 3:
			v := d.i64()
			m.LastDecreaseTime = &v
		case 4:
			m.NumberOfDecreasesToday = d.i32()
		default:
			d.skip()
		}
	}
	return d.err
}

type ConsumedCapacity struct {
	CapacityUnit *CapacityUnit
}

func (m *ConsumedCapacity) appendTo(b []byte) []byte {
	if m.CapacityUnit != nil {
		b = appendMessage(b, 1, m.CapacityUnit)
	}
	return b
}

func (m *ConsumedCapacity) Unmarshal(b []byte) error {
	*m = ConsumedCapacity{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.CapacityUnit = readMessage[CapacityUnit](d)
		default:
			d.skip()
		}
	}
	return d.err
}

// Error is the body of every non-2xx response and of failed batch rows.
type Error struct {
	Code    string
	Message *string
}

// GetMessage returns the message, or "" when the server sent none.
func (m *Error) GetMessage() string {
	if m.Message == nil {
		return ""
	}
	return *m.Message
}

func (m *Error) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.Code)
	if m.Message != nil {
		b = appendString(b, 2, *m.Message)
	}
	return b
}

func (m *Error) Unmarshal(b []byte) error {
	*m = Error{}
	d := newDecoder(b)
	seenCode := false
	for d.next() {
		switch d.num {
		case 1:
			m.Code = d.str()
			seenCode = true
		case 2:
			v := d.str()
			m.Message = &v
		default:
			d.skip()
		}
	}
	if d.err != nil {
		return d.err
	}
	if !seenCode {
		return errors.New("error: missing required field code")
	}
	return nil
}

// ColumnCondition wraps a serialized RelationCondition or CompositeCondition;
// Type says which.
type ColumnCondition struct {
	Type      ColumnConditionType
	Condition []byte
}

func (m *ColumnCondition) appendTo(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Type))
	return appendBytes(b, 2, m.Condition)
}

func (m *ColumnCondition) Unmarshal(b []byte) error {
	*m = ColumnCondition{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Type = ColumnConditionType(d.i32())
		case 2:
			m.Condition = d.blob()
		default:
			d.skip()
		}
	}
	return d.err
}

type RelationCondition struct {
	ColumnName    string
	Comparator    ComparatorType
	ColumnValue   *ColumnValue
	PassIfMissing bool
}

func (m *RelationCondition) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.ColumnName)
	b = appendInt32(b, 2, int32(m.Comparator))
	if m.ColumnValue != nil {
		b = appendMessage(b, 3, m.ColumnValue)
	}
	return appendBool(b, 4, m.PassIfMissing)
}

func (m *RelationCondition) Unmarshal(b []byte) error {
	*m = RelationCondition{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.ColumnName = d.str()
		case 2:
			m.Comparator = ComparatorType(d.i32())
		case 3:
			m.ColumnValue = readMessage[ColumnValue](d)
		case 4:
			m.PassIfMissing = d.boolean()
		default:
			d.skip()
		}
	}
	return d.err
}

type CompositeCondition struct {
	Combinator    LogicalOperator
	SubConditions []*ColumnCondition
}

func (m *CompositeCondition) appendTo(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Combinator))
	return appendMessages(b, 2, m.SubConditions)
}

func (m *CompositeCondition) Unmarshal(b []byte) error {
	*m = CompositeCondition{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Combinator = LogicalOperator(d.i32())
		case 2:
			m.SubConditions = append(m.SubConditions, readMessage[ColumnCondition](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type Condition struct {
	RowExistence    RowExistenceExpectation
	ColumnCondition *ColumnCondition
}

func (m *Condition) appendTo(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.RowExistence))
	if m.ColumnCondition != nil {
		b = appendMessage(b, 2, m.ColumnCondition)
	}
	return b
}

func (m *Condition) Unmarshal(b []byte) error {
	*m = Condition{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.RowExistence = RowExistenceExpectation(d.i32())
		case 2:
			m.ColumnCondition = readMessage[ColumnCondition](d)
		default:
			d.skip()
		}
	}
	return d.err
}

// ColumnUpdate is one attribute change of an UpdateRow. Value is nil for
// deletes.
type ColumnUpdate struct {
	Type  OperationType
	Name  string
	Value *ColumnValue
}

func (m *ColumnUpdate) appendTo(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Type))
	b = appendString(b, 2, m.Name)
	if m.Value != nil {
		b = appendMessage(b, 3, m.Value)
	}
	return b
}

func (m *ColumnUpdate) Unmarshal(b []byte) error {
	*m = ColumnUpdate{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Type = OperationType(d.i32())
		case 2:
			m.Name = d.str()
		case 3:
			m.Value = readMessage[ColumnValue](d)
		default:
			d.skip()
		}
	}
	return d.err
}
