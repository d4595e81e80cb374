package model

import "strconv"

// SingleRowQueryCriteria selects one row by key.
type SingleRowQueryCriteria struct {
	TableName    string
	PrimaryKey   PrimaryKey
	ColumnsToGet []string
	Filter       ColumnCondition
}

// MultiRowQueryCriteria selects several rows of one table by key. Responses
// come back in the order of RowKeys.
type MultiRowQueryCriteria struct {
	TableName    string
	RowKeys      []PrimaryKey
	ColumnsToGet []string
	Filter       ColumnCondition
}

func NewMultiRowQueryCriteria(table string) *MultiRowQueryCriteria {
	return &MultiRowQueryCriteria{TableName: table}
}

func (c *MultiRowQueryCriteria) AddRow(pk PrimaryKey) *MultiRowQueryCriteria {
	c.RowKeys = append(c.RowKeys, pk)
	return c
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "FORWARD"
	case Backward:
		return "BACKWARD"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// RangeRowQueryCriteria describes an ordered scan from an inclusive start key
// to an exclusive end key. Either boundary may use InfMin/InfMax columns to
// leave that side open. For Backward scans the start key is the larger one.
type RangeRowQueryCriteria struct {
	TableName                string
	Direction                Direction
	InclusiveStartPrimaryKey PrimaryKey
	ExclusiveEndPrimaryKey   PrimaryKey
	Limit                    Optional[int32]
	ColumnsToGet             []string
	Filter                   ColumnCondition
}
