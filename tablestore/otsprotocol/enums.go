package otsprotocol

import "fmt"

type ColumnType int32

const (
	ColumnTypeInfMin  ColumnType = 0
	ColumnTypeInfMax  ColumnType = 1
	ColumnTypeInteger ColumnType = 2
	ColumnTypeString  ColumnType = 3
	ColumnTypeBoolean ColumnType = 4
	ColumnTypeDouble  ColumnType = 5
	ColumnTypeBinary  ColumnType = 6
)

var columnTypeNames = map[ColumnType]string{
	ColumnTypeInfMin:  "INF_MIN",
	ColumnTypeInfMax:  "INF_MAX",
	ColumnTypeInteger: "INTEGER",
	ColumnTypeString:  "STRING",
	ColumnTypeBoolean: "BOOLEAN",
	ColumnTypeDouble:  "DOUBLE",
	ColumnTypeBinary:  "BINARY",
}

func (t ColumnType) String() string {
	if s, ok := columnTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ColumnType(%d)", int32(t))
}

type RowExistenceExpectation int32

const (
	RowExistenceIgnore         RowExistenceExpectation = 0
	RowExistenceExpectExist    RowExistenceExpectation = 1
	RowExistenceExpectNotExist RowExistenceExpectation = 2
)

type OperationType int32

const (
	OperationTypePut    OperationType = 1
	OperationTypeDelete OperationType = 2
)

type Direction int32

const (
	DirectionForward  Direction = 0
	DirectionBackward Direction = 1
)

type ColumnConditionType int32

const (
	ColumnConditionTypeRelation  ColumnConditionType = 1
	ColumnConditionTypeComposite ColumnConditionType = 2
)

type ComparatorType int32

const (
	ComparatorEqual        ComparatorType = 1
	ComparatorNotEqual     ComparatorType = 2
	ComparatorGreaterThan  ComparatorType = 3
	ComparatorGreaterEqual ComparatorType = 4
	ComparatorLessThan     ComparatorType = 5
	ComparatorLessEqual    ComparatorType = 6
)

type LogicalOperator int32

const (
	LogicalNot LogicalOperator = 1
	LogicalAnd LogicalOperator = 2
	LogicalOr  LogicalOperator = 3
)
