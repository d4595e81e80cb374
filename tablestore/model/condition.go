package model

import "strconv"

type RowExistenceExpectation int

const (
	RowExistenceIgnore RowExistenceExpectation = iota
	RowExistenceExpectExist
	RowExistenceExpectNotExist
)

func (e RowExistenceExpectation) String() string {
	switch e {
	case RowExistenceIgnore:
		return "IGNORE"
	case RowExistenceExpectExist:
		return "EXPECT_EXIST"
	case RowExistenceExpectNotExist:
		return "EXPECT_NOT_EXIST"
	default:
		return "RowExistenceExpectation(" + strconv.Itoa(int(e)) + ")"
	}
}

// Condition gates a write. The zero value ignores row existence and has no
// column condition.
type Condition struct {
	RowExistence    RowExistenceExpectation
	ColumnCondition ColumnCondition
}

func NewCondition(e RowExistenceExpectation) Condition {
	return Condition{RowExistence: e}
}

// WithColumnCondition returns the condition with cc attached.
func (c Condition) WithColumnCondition(cc ColumnCondition) Condition {
	c.ColumnCondition = cc
	return c
}

type ColumnConditionType int

const (
	ColumnConditionRelational ColumnConditionType = iota + 1
	ColumnConditionComposite
)

func (t ColumnConditionType) String() string {
	switch t {
	case ColumnConditionRelational:
		return "RELATIONAL_CONDITION"
	case ColumnConditionComposite:
		return "COMPOSITE_CONDITION"
	default:
		return "ColumnConditionType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ColumnCondition is a node of a condition tree. It is a closed set: the only
// implementations are *RelationalCondition and *CompositeCondition. The same
// tree serves as a write precondition and as a read filter.
type ColumnCondition interface {
	ConditionType() ColumnConditionType
	isColumnCondition()
}

type CompareOperator int

const (
	Equal CompareOperator = iota + 1
	NotEqual
	GreaterThan
	GreaterEqual
	LessThan
	LessEqual
)

func (o CompareOperator) String() string {
	switch o {
	case Equal:
		return "EQUAL"
	case NotEqual:
		return "NOT_EQUAL"
	case GreaterThan:
		return "GREATER_THAN"
	case GreaterEqual:
		return "GREATER_EQUAL"
	case LessThan:
		return "LESS_THAN"
	case LessEqual:
		return "LESS_EQUAL"
	default:
		return "CompareOperator(" + strconv.Itoa(int(o)) + ")"
	}
}

// RelationalCondition compares one column against a value. PassIfMissing
// decides the outcome when the row has no such column.
type RelationalCondition struct {
	ColumnName    string
	Operator      CompareOperator
	Value         ColumnValue
	PassIfMissing bool
}

// NewRelationalCondition builds a comparison that passes on rows missing the
// column, which is the server's default.
func NewRelationalCondition(column string, op CompareOperator, v ColumnValue) *RelationalCondition {
	return &RelationalCondition{
		ColumnName:    column,
		Operator:      op,
		Value:         v,
		PassIfMissing: true,
	}
}

// WithPassIfMissing sets the missing-column policy and returns c.
func (c *RelationalCondition) WithPassIfMissing(pass bool) *RelationalCondition {
	c.PassIfMissing = pass
	return c
}

func (c *RelationalCondition) ConditionType() ColumnConditionType { return ColumnConditionRelational }
func (*RelationalCondition) isColumnCondition()                    {}

type LogicOperator int

const (
	Not LogicOperator = iota + 1
	And
	Or
)

func (o LogicOperator) String() string {
	switch o {
	case Not:
		return "NOT"
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return "LogicOperator(" + strconv.Itoa(int(o)) + ")"
	}
}

// CompositeCondition combines child conditions. NOT takes exactly one child,
// AND and OR take two or more.
type CompositeCondition struct {
	Operator      LogicOperator
	SubConditions []ColumnCondition
}

func NewCompositeCondition(op LogicOperator, subs ...ColumnCondition) *CompositeCondition {
	return &CompositeCondition{Operator: op, SubConditions: subs}
}

// Add appends a child and returns c.
func (c *CompositeCondition) Add(sub ColumnCondition) *CompositeCondition {
	c.SubConditions = append(c.SubConditions, sub)
	return c
}

func (c *CompositeCondition) ConditionType() ColumnConditionType { return ColumnConditionComposite }
func (*CompositeCondition) isColumnCondition()                    {}
