package otsprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func ptr[T any](v T) *T { return &v }

func intColumn(name string, v int64) *Column {
	return &Column{Name: name, Value: &ColumnValue{Type: ColumnTypeInteger, VInt: ptr(v)}}
}

func TestGetRangeResponse_Decode(t *testing.T) {
	in := &GetRangeResponse{
		Consumed: &ConsumedCapacity{CapacityUnit: &CapacityUnit{Read: ptr[int32](2)}},
		Rows: []*Row{
			{PrimaryKeyColumns: []*Column{intColumn("pk", 1)}},
			{
				PrimaryKeyColumns: []*Column{intColumn("pk", 2)},
				AttributeColumns: []*Column{
					{Name: "s", Value: &ColumnValue{Type: ColumnTypeString, VString: ptr("hi")}},
				},
			},
		},
	}

	var out GetRangeResponse
	require.NoError(t, Unmarshal(Marshal(in), &out))
	assert.Equal(t, in, &out)
	assert.Empty(t, out.NextStartPrimaryKey)
	assert.Nil(t, out.Consumed.CapacityUnit.Write)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := Marshal(&DeleteTableRequest{TableName: "t"})
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")
	b = protowire.AppendTag(b, 100, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	var out DeleteTableRequest
	require.NoError(t, Unmarshal(b, &out))
	assert.Equal(t, "t", out.TableName)
}

func TestUnmarshal_WrongWireType(t *testing.T) {
	b := protowire.AppendTag(nil, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	var out DeleteTableRequest
	assert.Error(t, Unmarshal(b, &out))
}

func TestUnmarshal_Truncated(t *testing.T) {
	b := Marshal(&DescribeTableRequest{TableName: "truncated"})
	var out DescribeTableRequest
	assert.Error(t, Unmarshal(b[:len(b)-2], &out))
}

func TestError_RequiresCode(t *testing.T) {
	var e Error
	assert.Error(t, Unmarshal(Marshal(&emptyMessage{}), &e))

	require.NoError(t, Unmarshal(Marshal(&Error{Code: ErrCodeObjectNotExist}), &e))
	assert.Equal(t, ErrCodeObjectNotExist, e.Code)
	assert.Nil(t, e.Message)
}

func TestBatchRowResponse_IsOkDefaultsToTrue(t *testing.T) {
	var w RowInBatchWriteRowResponse
	require.NoError(t, Unmarshal(nil, &w))
	assert.True(t, w.IsOk)

	var g RowInBatchGetRowResponse
	require.NoError(t, Unmarshal(Marshal(&RowInBatchGetRowResponse{
		IsOk:  false,
		Error: &Error{Code: ErrCodeConditionCheckFail, Message: ptr("nope")},
	}), &g))
	assert.False(t, g.IsOk)
	assert.Equal(t, "nope", *g.Error.Message)
}

func TestColumnValue_Payloads(t *testing.T) {
	tests := []struct {
		name string
		in   *ColumnValue
	}{
		{"negative integer", &ColumnValue{Type: ColumnTypeInteger, VInt: ptr[int64](-42)}},
		{"empty binary", &ColumnValue{Type: ColumnTypeBinary, VBinary: []byte{}}},
		{"double", &ColumnValue{Type: ColumnTypeDouble, VDouble: ptr(3.25)}},
		{"false", &ColumnValue{Type: ColumnTypeBoolean, VBool: ptr(false)}},
		{"inf max", &ColumnValue{Type: ColumnTypeInfMax}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out ColumnValue
			require.NoError(t, Unmarshal(Marshal(tt.in), &out))
			assert.Equal(t, tt.in, &out)
		})
	}
}

func TestColumn_RequiresValue(t *testing.T) {
	var c Column
	assert.Error(t, Unmarshal(Marshal(&Column{Name: "x"}), &c))
}

func TestCompositeCondition_Nested(t *testing.T) {
	rel := &RelationCondition{
		ColumnName:    "a",
		Comparator:    ComparatorGreaterThan,
		ColumnValue:   &ColumnValue{Type: ColumnTypeInteger, VInt: ptr[int64](5)},
		PassIfMissing: true,
	}
	leaf := &ColumnCondition{Type: ColumnConditionTypeRelation, Condition: Marshal(rel)}
	not := &ColumnCondition{
		Type:      ColumnConditionTypeComposite,
		Condition: Marshal(&CompositeCondition{Combinator: LogicalNot, SubConditions: []*ColumnCondition{leaf}}),
	}

	var cc ColumnCondition
	require.NoError(t, Unmarshal(Marshal(not), &cc))
	require.Equal(t, ColumnConditionTypeComposite, cc.Type)

	var comp CompositeCondition
	require.NoError(t, Unmarshal(cc.Condition, &comp))
	assert.Equal(t, LogicalNot, comp.Combinator)
	require.Len(t, comp.SubConditions, 1)

	var got RelationCondition
	require.NoError(t, Unmarshal(comp.SubConditions[0].Condition, &got))
	assert.Equal(t, rel, &got)
}

func TestText(t *testing.T) {
	s := Text(&ListTableResponse{TableNames: []string{"a", "b"}})
	assert.Contains(t, s, `"TableNames":["a","b"]`)
}
