package otssdk

import (
	"fmt"

	"github.com/acksell/otskit/tablestore/model"
	"github.com/acksell/otskit/tablestore/otsprotocol"
)

func ptr[T any](v T) *T { return &v }

func encodeColumnValue(v model.ColumnValue) (*otsprotocol.ColumnValue, error) {
	switch v.Type() {
	case model.ColumnValueTypeInteger:
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeInteger, VInt: ptr(v.Integer())}, nil
	case model.ColumnValueTypeString:
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeString, VString: ptr(v.StringValue())}, nil
	case model.ColumnValueTypeBoolean:
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeBoolean, VBool: ptr(v.Boolean())}, nil
	case model.ColumnValueTypeDouble:
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeDouble, VDouble: ptr(v.Double())}, nil
	case model.ColumnValueTypeBinary:
		bin := v.Binary()
		if bin == nil {
			bin = []byte{}
		}
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeBinary, VBinary: bin}, nil
	case model.ColumnValueTypeInfMin:
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeInfMin}, nil
	case model.ColumnValueTypeInfMax:
		return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeInfMax}, nil
	default:
		return nil, invalidArgf("column value type %v has no wire form", v.Type())
	}
}

func decodeColumnValue(w *otsprotocol.ColumnValue) (model.ColumnValue, error) {
	if w == nil {
		return model.ColumnValue{}, fmt.Errorf("column has no value")
	}
	missing := func() (model.ColumnValue, error) {
		return model.ColumnValue{}, fmt.Errorf("column value of type %v carries no payload", w.Type)
	}
	switch w.Type {
	case otsprotocol.ColumnTypeInteger:
		if w.VInt == nil {
			return missing()
		}
		return model.IntegerValue(*w.VInt), nil
	case otsprotocol.ColumnTypeString:
		if w.VString == nil {
			return missing()
		}
		return model.StringValue(*w.VString), nil
	case otsprotocol.ColumnTypeBoolean:
		if w.VBool == nil {
			return missing()
		}
		return model.BooleanValue(*w.VBool), nil
	case otsprotocol.ColumnTypeDouble:
		if w.VDouble == nil {
			return missing()
		}
		return model.DoubleValue(*w.VDouble), nil
	case otsprotocol.ColumnTypeBinary:
		if w.VBinary == nil {
			return missing()
		}
		return model.BinaryValue(w.VBinary), nil
	case otsprotocol.ColumnTypeInfMin:
		return model.InfMin, nil
	case otsprotocol.ColumnTypeInfMax:
		return model.InfMax, nil
	default:
		return model.ColumnValue{}, &UnsupportedColumnTypeError{Tag: w.Type}
	}
}

func encodeColumnType(t model.ColumnValueType) (otsprotocol.ColumnType, error) {
	switch t {
	case model.ColumnValueTypeInteger:
		return otsprotocol.ColumnTypeInteger, nil
	case model.ColumnValueTypeString:
		return otsprotocol.ColumnTypeString, nil
	case model.ColumnValueTypeBoolean:
		return otsprotocol.ColumnTypeBoolean, nil
	case model.ColumnValueTypeDouble:
		return otsprotocol.ColumnTypeDouble, nil
	case model.ColumnValueTypeBinary:
		return otsprotocol.ColumnTypeBinary, nil
	default:
		return 0, invalidArgf("column type %v cannot be declared in a schema", t)
	}
}

func decodeColumnType(t otsprotocol.ColumnType) (model.ColumnValueType, error) {
	switch t {
	case otsprotocol.ColumnTypeInteger:
		return model.ColumnValueTypeInteger, nil
	case otsprotocol.ColumnTypeString:
		return model.ColumnValueTypeString, nil
	case otsprotocol.ColumnTypeBoolean:
		return model.ColumnValueTypeBoolean, nil
	case otsprotocol.ColumnTypeDouble:
		return model.ColumnValueTypeDouble, nil
	case otsprotocol.ColumnTypeBinary:
		return model.ColumnValueTypeBinary, nil
	case otsprotocol.ColumnTypeInfMin:
		return model.ColumnValueTypeInfMin, nil
	case otsprotocol.ColumnTypeInfMax:
		return model.ColumnValueTypeInfMax, nil
	default:
		return 0, &UnsupportedColumnTypeError{Tag: t}
	}
}

// encodeColumns converts row data. Sentinels are only accepted when
// allowBoundless is set, which is the case for range boundaries alone.
func encodeColumns(what string, cols []model.Column, allowBoundless bool) ([]*otsprotocol.Column, error) {
	out := make([]*otsprotocol.Column, 0, len(cols))
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return nil, invalidArgf("%s column with empty name", what)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, invalidArgf("duplicate %s column %q", what, c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.Value.IsBoundless() && !allowBoundless {
			return nil, invalidArgf("%s column %q holds %v, which is only valid as a range boundary", what, c.Name, c.Value)
		}
		v, err := encodeColumnValue(c.Value)
		if err != nil {
			return nil, fmt.Errorf("%s column %q: %w", what, c.Name, err)
		}
		out = append(out, &otsprotocol.Column{Name: c.Name, Value: v})
	}
	return out, nil
}

func encodePrimaryKey(pk model.PrimaryKey) ([]*otsprotocol.Column, error) {
	if len(pk) == 0 {
		return nil, invalidArgf("primary key is empty")
	}
	return encodeColumns("primary key", pk, false)
}

func encodeAttributes(attrs model.AttributeColumns) ([]*otsprotocol.Column, error) {
	return encodeColumns("attribute", attrs, false)
}

func encodeBoundary(pk model.PrimaryKey) ([]*otsprotocol.Column, error) {
	if len(pk) == 0 {
		return nil, invalidArgf("range boundary is empty")
	}
	return encodeColumns("range boundary", pk, true)
}

func decodeColumns(cols []*otsprotocol.Column) ([]model.Column, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	out := make([]model.Column, 0, len(cols))
	for _, c := range cols {
		v, err := decodeColumnValue(c.Value)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		out = append(out, model.Column{Name: c.Name, Value: v})
	}
	return out, nil
}

// decodeRow returns nil for an absent row, which the server signals with a
// row that has no primary key columns.
func decodeRow(w *otsprotocol.Row) (*model.Row, error) {
	if w == nil || len(w.PrimaryKeyColumns) == 0 {
		return nil, nil
	}
	pk, err := decodeColumns(w.PrimaryKeyColumns)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeColumns(w.AttributeColumns)
	if err != nil {
		return nil, err
	}
	return &model.Row{PrimaryKey: pk, Attributes: attrs}, nil
}

func encodeCapacityUnit(cu model.CapacityUnit) *otsprotocol.CapacityUnit {
	out := &otsprotocol.CapacityUnit{}
	if v, ok := cu.Read.Get(); ok {
		out.Read = ptr(v)
	}
	if v, ok := cu.Write.Get(); ok {
		out.Write = ptr(v)
	}
	return out
}

func decodeCapacityUnit(w *otsprotocol.CapacityUnit) model.CapacityUnit {
	var cu model.CapacityUnit
	if w == nil {
		return cu
	}
	if w.Read != nil {
		cu.Read = model.Some(*w.Read)
	}
	if w.Write != nil {
		cu.Write = model.Some(*w.Write)
	}
	return cu
}

func decodeConsumed(w *otsprotocol.ConsumedCapacity) model.CapacityUnit {
	if w == nil {
		return model.CapacityUnit{}
	}
	return decodeCapacityUnit(w.CapacityUnit)
}

func decodeReservedThroughputDetails(w *otsprotocol.ReservedThroughputDetails) model.ReservedThroughputDetails {
	if w == nil {
		return model.ReservedThroughputDetails{}
	}
	d := model.ReservedThroughputDetails{
		CapacityUnit:           decodeCapacityUnit(w.CapacityUnit),
		LastIncreaseTime:       w.LastIncreaseTime,
		NumberOfDecreasesToday: w.NumberOfDecreasesToday,
	}
	if w.LastDecreaseTime != nil {
		d.LastDecreaseTime = model.Some(*w.LastDecreaseTime)
	}
	return d
}

func encodeTableMeta(m model.TableMeta) (*otsprotocol.TableMeta, error) {
	if m.TableName == "" {
		return nil, invalidArgf("table name is empty")
	}
	if len(m.PrimaryKeySchema) == 0 {
		return nil, invalidArgf("table %q declares no primary key columns", m.TableName)
	}
	out := &otsprotocol.TableMeta{TableName: m.TableName}
	seen := make(map[string]struct{}, len(m.PrimaryKeySchema))
	for _, col := range m.PrimaryKeySchema {
		if col.Name == "" {
			return nil, invalidArgf("table %q: primary key column with empty name", m.TableName)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, invalidArgf("table %q: duplicate primary key column %q", m.TableName, col.Name)
		}
		seen[col.Name] = struct{}{}
		typ, err := encodeColumnType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("table %q column %q: %w", m.TableName, col.Name, err)
		}
		out.PrimaryKey = append(out.PrimaryKey, &otsprotocol.ColumnSchema{Name: col.Name, Type: typ})
	}
	return out, nil
}

func decodeTableMeta(w *otsprotocol.TableMeta) (model.TableMeta, error) {
	if w == nil {
		return model.TableMeta{}, nil
	}
	m := model.NewTableMeta(w.TableName)
	for _, col := range w.PrimaryKey {
		typ, err := decodeColumnType(col.Type)
		if err != nil {
			return model.TableMeta{}, fmt.Errorf("primary key column %q: %w", col.Name, err)
		}
		m = m.AddPrimaryKeyColumn(col.Name, typ)
	}
	return m, nil
}

func encodeRowExistence(e model.RowExistenceExpectation) (otsprotocol.RowExistenceExpectation, error) {
	switch e {
	case model.RowExistenceIgnore:
		return otsprotocol.RowExistenceIgnore, nil
	case model.RowExistenceExpectExist:
		return otsprotocol.RowExistenceExpectExist, nil
	case model.RowExistenceExpectNotExist:
		return otsprotocol.RowExistenceExpectNotExist, nil
	default:
		return 0, invalidArgf("unknown row existence expectation %v", e)
	}
}

func encodeCondition(c model.Condition) (*otsprotocol.Condition, error) {
	e, err := encodeRowExistence(c.RowExistence)
	if err != nil {
		return nil, err
	}
	out := &otsprotocol.Condition{RowExistence: e}
	if c.ColumnCondition != nil {
		cc, err := encodeColumnCondition(c.ColumnCondition)
		if err != nil {
			return nil, err
		}
		out.ColumnCondition = cc
	}
	return out, nil
}

// encodeFilter is encodeColumnCondition for the optional read filters.
func encodeFilter(cc model.ColumnCondition) (*otsprotocol.ColumnCondition, error) {
	if cc == nil {
		return nil, nil
	}
	return encodeColumnCondition(cc)
}

// encodeColumnCondition serializes a condition tree. Every node becomes an
// envelope of {type, opaque bytes}; a composite node holds its children's
// envelopes, so readers dispatch on the type alone.
func encodeColumnCondition(cc model.ColumnCondition) (*otsprotocol.ColumnCondition, error) {
	switch c := cc.(type) {
	case *model.RelationalCondition:
		if c == nil {
			return nil, invalidArgf("nil relational condition")
		}
		rel, err := encodeRelationalCondition(c)
		if err != nil {
			return nil, err
		}
		return &otsprotocol.ColumnCondition{
			Type:      otsprotocol.ColumnConditionTypeRelation,
			Condition: otsprotocol.Marshal(rel),
		}, nil
	case *model.CompositeCondition:
		if c == nil {
			return nil, invalidArgf("nil composite condition")
		}
		comp, err := encodeCompositeCondition(c)
		if err != nil {
			return nil, err
		}
		return &otsprotocol.ColumnCondition{
			Type:      otsprotocol.ColumnConditionTypeComposite,
			Condition: otsprotocol.Marshal(comp),
		}, nil
	case nil:
		return nil, invalidArgf("nil column condition")
	default:
		return nil, invalidArgf("unknown column condition type %T", cc)
	}
}

func encodeComparator(op model.CompareOperator) (otsprotocol.ComparatorType, error) {
	switch op {
	case model.Equal:
		return otsprotocol.ComparatorEqual, nil
	case model.NotEqual:
		return otsprotocol.ComparatorNotEqual, nil
	case model.GreaterThan:
		return otsprotocol.ComparatorGreaterThan, nil
	case model.GreaterEqual:
		return otsprotocol.ComparatorGreaterEqual, nil
	case model.LessThan:
		return otsprotocol.ComparatorLessThan, nil
	case model.LessEqual:
		return otsprotocol.ComparatorLessEqual, nil
	default:
		return 0, invalidArgf("unknown comparator %v", op)
	}
}

func encodeRelationalCondition(c *model.RelationalCondition) (*otsprotocol.RelationCondition, error) {
	if c.ColumnName == "" {
		return nil, invalidArgf("relational condition with empty column name")
	}
	op, err := encodeComparator(c.Operator)
	if err != nil {
		return nil, err
	}
	if c.Value.IsBoundless() {
		return nil, invalidArgf("relational condition on %q compares against %v", c.ColumnName, c.Value)
	}
	v, err := encodeColumnValue(c.Value)
	if err != nil {
		return nil, fmt.Errorf("relational condition on %q: %w", c.ColumnName, err)
	}
	return &otsprotocol.RelationCondition{
		ColumnName:    c.ColumnName,
		Comparator:    op,
		ColumnValue:   v,
		PassIfMissing: c.PassIfMissing,
	}, nil
}

func encodeCompositeCondition(c *model.CompositeCondition) (*otsprotocol.CompositeCondition, error) {
	var op otsprotocol.LogicalOperator
	switch c.Operator {
	case model.Not:
		if len(c.SubConditions) != 1 {
			return nil, invalidArgf("NOT takes exactly one sub condition, got %d", len(c.SubConditions))
		}
		op = otsprotocol.LogicalNot
	case model.And, model.Or:
		if len(c.SubConditions) < 2 {
			return nil, invalidArgf("%v takes at least two sub conditions, got %d", c.Operator, len(c.SubConditions))
		}
		op = otsprotocol.LogicalAnd
		if c.Operator == model.Or {
			op = otsprotocol.LogicalOr
		}
	default:
		return nil, invalidArgf("unknown logic operator %v", c.Operator)
	}

	out := &otsprotocol.CompositeCondition{Combinator: op}
	for _, sub := range c.SubConditions {
		env, err := encodeColumnCondition(sub)
		if err != nil {
			return nil, err
		}
		out.SubConditions = append(out.SubConditions, env)
	}
	return out, nil
}
