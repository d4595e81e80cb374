package otsstore

import (
	"errors"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/dgraph-io/badger/v4"
)

// checkValue rejects values whose payload does not match their type.
func checkValue(v *otsprotocol.ColumnValue, allowBoundless bool) error {
	var ok bool
	switch v.Type {
	case otsprotocol.ColumnTypeInteger:
		ok = v.VInt != nil
	case otsprotocol.ColumnTypeString:
		ok = v.VString != nil
	case otsprotocol.ColumnTypeBoolean:
		ok = v.VBool != nil
	case otsprotocol.ColumnTypeDouble:
		ok = v.VDouble != nil
	case otsprotocol.ColumnTypeBinary:
		ok = v.VBinary != nil
	case otsprotocol.ColumnTypeInfMin, otsprotocol.ColumnTypeInfMax:
		if !allowBoundless {
			return errParam("INF_MIN and INF_MAX are only allowed in range boundaries.")
		}
		return nil
	default:
		return errParam("Unknown column type: %d.", v.Type)
	}
	if !ok {
		return errParam("Value of type %v carries no payload.", v.Type)
	}
	return nil
}

// checkPrimaryKey validates pk against the schema: same columns, same order,
// same types. Boundaries may hold INF_MIN or INF_MAX in any column.
func checkPrimaryKey(meta *otsprotocol.TableMeta, pk []*otsprotocol.Column, allowBoundless bool) error {
	if len(pk) != len(meta.PrimaryKey) {
		return errParam("The number of primary key columns must be %d, got %d.", len(meta.PrimaryKey), len(pk))
	}
	for i, col := range pk {
		schema := meta.PrimaryKey[i]
		if col.Name != schema.Name {
			return errParam("Primary key column %d must be '%s', got '%s'.", i, schema.Name, col.Name)
		}
		if err := checkValue(col.Value, allowBoundless); err != nil {
			return err
		}
		if col.Value.Type == otsprotocol.ColumnTypeInfMin || col.Value.Type == otsprotocol.ColumnTypeInfMax {
			continue
		}
		if col.Value.Type != schema.Type {
			return errParam("Type mismatch for primary key '%s': want %v, got %v.", col.Name, schema.Type, col.Value.Type)
		}
	}
	return nil
}

func checkAttributeName(meta *otsprotocol.TableMeta, name string) error {
	if err := checkName("attribute column", name); err != nil {
		return err
	}
	for _, pk := range meta.PrimaryKey {
		if pk.Name == name {
			return errParam("Attribute column '%s' collides with a primary key column.", name)
		}
	}
	return nil
}

func checkAttributes(meta *otsprotocol.TableMeta, attrs []*otsprotocol.Column) error {
	seen := make(map[string]struct{}, len(attrs))
	for _, col := range attrs {
		if err := checkAttributeName(meta, col.Name); err != nil {
			return err
		}
		if _, dup := seen[col.Name]; dup {
			return errParam("Duplicated attribute column name: '%s'.", col.Name)
		}
		seen[col.Name] = struct{}{}
		if err := checkValue(col.Value, false); err != nil {
			return err
		}
	}
	return nil
}

// readRow returns the stored row or nil.
func readRow(txn *badger.Txn, key []byte) (*otsprotocol.Row, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var row *otsprotocol.Row
	err = item.Value(func(val []byte) error {
		row, err = decodeRow(val)
		return err
	})
	return row, err
}

// project keeps the primary key and the requested attribute columns. No
// columns requested means all of them.
func project(row *otsprotocol.Row, columns []string) *otsprotocol.Row {
	if len(columns) == 0 {
		return row
	}
	want := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		want[c] = struct{}{}
	}
	out := &otsprotocol.Row{PrimaryKeyColumns: row.PrimaryKeyColumns}
	for _, c := range row.AttributeColumns {
		if _, ok := want[c.Name]; ok {
			out.AttributeColumns = append(out.AttributeColumns, c)
		}
	}
	return out
}

func readCapacity(rows int) *otsprotocol.ConsumedCapacity {
	if rows < 1 {
		rows = 1
	}
	return &otsprotocol.ConsumedCapacity{CapacityUnit: &otsprotocol.CapacityUnit{Read: ptr(int32(rows)), Write: ptr(int32(0))}}
}

func writeCapacity() *otsprotocol.ConsumedCapacity {
	return &otsprotocol.ConsumedCapacity{CapacityUnit: &otsprotocol.CapacityUnit{Read: ptr(int32(0)), Write: ptr(int32(1))}}
}

// rowTarget resolves the table and key a write addresses and loads the row
// currently stored there.
func (s *Store) rowTarget(txn *badger.Txn, table string, pk []*otsprotocol.Column) (*otsprotocol.TableMeta, []byte, *otsprotocol.Row, error) {
	record, err := s.loadTable(txn, table)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := checkPrimaryKey(record.TableMeta, pk, false); err != nil {
		return nil, nil, nil, err
	}
	key, err := rowKey(table, pk)
	if err != nil {
		return nil, nil, nil, errParam("%v", err)
	}
	existing, err := readRow(txn, key)
	if err != nil {
		return nil, nil, nil, err
	}
	return record.TableMeta, key, existing, nil
}

func (s *Store) applyPut(txn *badger.Txn, table string, cond *otsprotocol.Condition, pk, attrs []*otsprotocol.Column) error {
	meta, key, existing, err := s.rowTarget(txn, table, pk)
	if err != nil {
		return err
	}
	if err := checkAttributes(meta, attrs); err != nil {
		return err
	}
	if err := checkCondition(cond, existing); err != nil {
		return err
	}
	return txn.Set(key, encodeRow(pk, attrs))
}

func (s *Store) applyUpdate(txn *badger.Txn, table string, cond *otsprotocol.Condition, pk []*otsprotocol.Column, updates []*otsprotocol.ColumnUpdate) error {
	meta, key, existing, err := s.rowTarget(txn, table, pk)
	if err != nil {
		return err
	}
	if err := checkCondition(cond, existing); err != nil {
		return err
	}

	var attrs []*otsprotocol.Column
	if existing != nil {
		attrs = existing.AttributeColumns
	}
	for _, u := range updates {
		if err := checkAttributeName(meta, u.Name); err != nil {
			return err
		}
		switch u.Type {
		case otsprotocol.OperationTypePut:
			if u.Value == nil {
				return errParam("Column '%s' is put without a value.", u.Name)
			}
			if err := checkValue(u.Value, false); err != nil {
				return err
			}
			attrs = setColumn(attrs, &otsprotocol.Column{Name: u.Name, Value: u.Value})
		case otsprotocol.OperationTypeDelete:
			attrs = removeColumn(attrs, u.Name)
		default:
			return errParam("Invalid operation type for column '%s': %d.", u.Name, u.Type)
		}
	}
	return txn.Set(key, encodeRow(pk, attrs))
}

func (s *Store) applyDelete(txn *badger.Txn, table string, cond *otsprotocol.Condition, pk []*otsprotocol.Column) error {
	_, key, existing, err := s.rowTarget(txn, table, pk)
	if err != nil {
		return err
	}
	if err := checkCondition(cond, existing); err != nil {
		return err
	}
	return txn.Delete(key)
}

func setColumn(cols []*otsprotocol.Column, c *otsprotocol.Column) []*otsprotocol.Column {
	for i, existing := range cols {
		if existing.Name == c.Name {
			cols[i] = c
			return cols
		}
	}
	return append(cols, c)
}

func removeColumn(cols []*otsprotocol.Column, name string) []*otsprotocol.Column {
	out := cols[:0]
	for _, c := range cols {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) putRow(req *otsprotocol.PutRowRequest) (otsprotocol.Message, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.applyPut(txn, req.TableName, req.Condition, req.PrimaryKey, req.AttributeColumns)
	})
	if err != nil {
		return nil, err
	}
	return &otsprotocol.PutRowResponse{Consumed: writeCapacity()}, nil
}

func (s *Store) updateRow(req *otsprotocol.UpdateRowRequest) (otsprotocol.Message, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.applyUpdate(txn, req.TableName, req.Condition, req.PrimaryKey, req.AttributeColumns)
	})
	if err != nil {
		return nil, err
	}
	return &otsprotocol.UpdateRowResponse{Consumed: writeCapacity()}, nil
}

func (s *Store) deleteRow(req *otsprotocol.DeleteRowRequest) (otsprotocol.Message, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.applyDelete(txn, req.TableName, req.Condition, req.PrimaryKey)
	})
	if err != nil {
		return nil, err
	}
	return &otsprotocol.DeleteRowResponse{Consumed: writeCapacity()}, nil
}

// lookupRow reads one row for GetRow and BatchGetRow. A missing row, or one
// rejected by the filter, comes back nil.
func (s *Store) lookupRow(txn *badger.Txn, table string, pk []*otsprotocol.Column, columns []string, filter rowFilter) (*otsprotocol.Row, error) {
	record, err := s.loadTable(txn, table)
	if err != nil {
		return nil, err
	}
	if err := checkPrimaryKey(record.TableMeta, pk, false); err != nil {
		return nil, err
	}
	key, err := rowKey(table, pk)
	if err != nil {
		return nil, errParam("%v", err)
	}
	row, err := readRow(txn, key)
	if err != nil || row == nil {
		return nil, err
	}
	if filter != nil && !filter.match(rowView{row: row}) {
		return nil, nil
	}
	return project(row, columns), nil
}

func (s *Store) getRow(req *otsprotocol.GetRowRequest) (otsprotocol.Message, error) {
	filter, err := parseFilter(req.Filter)
	if err != nil {
		return nil, err
	}
	var row *otsprotocol.Row
	err = s.db.View(func(txn *badger.Txn) error {
		var err error
		row, err = s.lookupRow(txn, req.TableName, req.PrimaryKey, req.ColumnsToGet, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &otsprotocol.Row{}
	}
	return &otsprotocol.GetRowResponse{Consumed: readCapacity(1), Row: row}, nil
}
