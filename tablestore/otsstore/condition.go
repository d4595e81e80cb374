package otsstore

import (
	"bytes"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"golang.org/x/exp/constraints"
)

// rowView is what conditions and filters are evaluated against. A nil row
// has no columns, so every relation falls back to its pass-if-missing flag.
type rowView struct {
	row *otsprotocol.Row
}

func (v rowView) get(name string) (*otsprotocol.ColumnValue, bool) {
	if v.row == nil {
		return nil, false
	}
	for _, c := range v.row.AttributeColumns {
		if c.Name == name {
			return c.Value, true
		}
	}
	for _, c := range v.row.PrimaryKeyColumns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

type rowFilter interface {
	match(v rowView) bool
}

type relation struct {
	column        string
	comparator    otsprotocol.ComparatorType
	value         *otsprotocol.ColumnValue
	passIfMissing bool
}

type composite struct {
	combinator otsprotocol.LogicalOperator
	subs       []rowFilter
}

// parseColumnCondition decodes a condition envelope, recursing into the
// opaque blob of composite nodes.
func parseColumnCondition(cc *otsprotocol.ColumnCondition) (rowFilter, error) {
	switch cc.Type {
	case otsprotocol.ColumnConditionTypeRelation:
		var rel otsprotocol.RelationCondition
		if err := rel.Unmarshal(cc.Condition); err != nil {
			return nil, errParam("Invalid relation condition: %v.", err)
		}
		if rel.Comparator < otsprotocol.ComparatorEqual || rel.Comparator > otsprotocol.ComparatorLessEqual {
			return nil, errParam("Invalid comparator: %d.", rel.Comparator)
		}
		if rel.ColumnValue == nil {
			return nil, errParam("Relation condition on '%s' has no value.", rel.ColumnName)
		}
		if err := checkValue(rel.ColumnValue, false); err != nil {
			return nil, err
		}
		return relation{
			column:        rel.ColumnName,
			comparator:    rel.Comparator,
			value:         rel.ColumnValue,
			passIfMissing: rel.PassIfMissing,
		}, nil

	case otsprotocol.ColumnConditionTypeComposite:
		var comp otsprotocol.CompositeCondition
		if err := comp.Unmarshal(cc.Condition); err != nil {
			return nil, errParam("Invalid composite condition: %v.", err)
		}
		switch comp.Combinator {
		case otsprotocol.LogicalNot:
			if len(comp.SubConditions) != 1 {
				return nil, errParam("NOT takes exactly one sub condition.")
			}
		case otsprotocol.LogicalAnd, otsprotocol.LogicalOr:
			if len(comp.SubConditions) < 2 {
				return nil, errParam("AND and OR take at least two sub conditions.")
			}
		default:
			return nil, errParam("Invalid logical operator: %d.", comp.Combinator)
		}
		out := composite{combinator: comp.Combinator}
		for _, sub := range comp.SubConditions {
			f, err := parseColumnCondition(sub)
			if err != nil {
				return nil, err
			}
			out.subs = append(out.subs, f)
		}
		return out, nil

	default:
		return nil, errParam("Invalid column condition type: %d.", cc.Type)
	}
}

func parseFilter(cc *otsprotocol.ColumnCondition) (rowFilter, error) {
	if cc == nil {
		return nil, nil
	}
	return parseColumnCondition(cc)
}

func (r relation) match(v rowView) bool {
	got, ok := v.get(r.column)
	if !ok {
		return r.passIfMissing
	}
	c, comparable := compareValues(got, r.value)
	if !comparable {
		return r.comparator == otsprotocol.ComparatorNotEqual
	}
	switch r.comparator {
	case otsprotocol.ComparatorEqual:
		return c == 0
	case otsprotocol.ComparatorNotEqual:
		return c != 0
	case otsprotocol.ComparatorGreaterThan:
		return c > 0
	case otsprotocol.ComparatorGreaterEqual:
		return c >= 0
	case otsprotocol.ComparatorLessThan:
		return c < 0
	case otsprotocol.ComparatorLessEqual:
		return c <= 0
	}
	return false
}

func (c composite) match(v rowView) bool {
	switch c.combinator {
	case otsprotocol.LogicalNot:
		return !c.subs[0].match(v)
	case otsprotocol.LogicalAnd:
		for _, s := range c.subs {
			if !s.match(v) {
				return false
			}
		}
		return true
	case otsprotocol.LogicalOr:
		for _, s := range c.subs {
			if s.match(v) {
				return true
			}
		}
	}
	return false
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// compareValues orders two values of the same type. Values of different
// types are not comparable.
func compareValues(a, b *otsprotocol.ColumnValue) (int, bool) {
	if a.Type != b.Type {
		return 0, false
	}
	switch a.Type {
	case otsprotocol.ColumnTypeInteger:
		return compareOrdered(*a.VInt, *b.VInt), true
	case otsprotocol.ColumnTypeString:
		return compareOrdered(*a.VString, *b.VString), true
	case otsprotocol.ColumnTypeDouble:
		return compareOrdered(*a.VDouble, *b.VDouble), true
	case otsprotocol.ColumnTypeBoolean:
		return compareOrdered(boolRank(*a.VBool), boolRank(*b.VBool)), true
	case otsprotocol.ColumnTypeBinary:
		return bytes.Compare(a.VBinary, b.VBinary), true
	}
	return 0, false
}

// checkCondition gates a write on the row currently stored under its key,
// nil when there is none.
func checkCondition(cond *otsprotocol.Condition, existing *otsprotocol.Row) error {
	if cond == nil {
		return errParam("Condition is required.")
	}
	switch cond.RowExistence {
	case otsprotocol.RowExistenceIgnore:
	case otsprotocol.RowExistenceExpectExist:
		if existing == nil {
			return errConditionFailed
		}
	case otsprotocol.RowExistenceExpectNotExist:
		if existing != nil {
			return errConditionFailed
		}
	default:
		return errParam("Invalid row existence expectation: %d.", cond.RowExistence)
	}
	if cond.ColumnCondition == nil {
		return nil
	}
	f, err := parseColumnCondition(cond.ColumnCondition)
	if err != nil {
		return err
	}
	if !f.match(rowView{row: existing}) {
		return errConditionFailed
	}
	return nil
}
