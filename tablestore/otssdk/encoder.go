package otssdk

import (
	"fmt"

	"github.com/acksell/otskit/tablestore/model"
	"github.com/acksell/otskit/tablestore/otsprotocol"
)

type encodeFunc func(req any) (otsprotocol.Message, error)

// encoders is built once and only read afterwards.
var encoders = map[string]encodeFunc{
	otsprotocol.APICreateTable:   encodeAs(encodeCreateTable),
	otsprotocol.APIDeleteTable:   encodeAs(encodeDeleteTable),
	otsprotocol.APIUpdateTable:   encodeAs(encodeUpdateTable),
	otsprotocol.APIDescribeTable: encodeAs(encodeDescribeTable),
	otsprotocol.APIListTable:     encodeAs(encodeListTable),
	otsprotocol.APIPutRow:        encodeAs(encodePutRow),
	otsprotocol.APIGetRow:        encodeAs(encodeGetRow),
	otsprotocol.APIUpdateRow:     encodeAs(encodeUpdateRow),
	otsprotocol.APIDeleteRow:     encodeAs(encodeDeleteRow),
	otsprotocol.APIBatchWriteRow: encodeAs(encodeBatchWriteRow),
	otsprotocol.APIBatchGetRow:   encodeAs(encodeBatchGetRow),
	otsprotocol.APIGetRange:      encodeAs(encodeGetRange),
}

func encodeAs[R any](fn func(*R) (otsprotocol.Message, error)) encodeFunc {
	return func(req any) (otsprotocol.Message, error) {
		r, ok := req.(*R)
		if !ok || r == nil {
			return nil, invalidArgf("request is %T, want %T", req, (*R)(nil))
		}
		return fn(r)
	}
}

func requireTableName(name string) error {
	if name == "" {
		return invalidArgf("table name is empty")
	}
	return nil
}

func encodeCreateTable(r *CreateTableRequest) (otsprotocol.Message, error) {
	meta, err := encodeTableMeta(r.TableMeta)
	if err != nil {
		return nil, err
	}
	return &otsprotocol.CreateTableRequest{
		TableMeta:          meta,
		ReservedThroughput: &otsprotocol.ReservedThroughput{CapacityUnit: encodeCapacityUnit(r.ReservedThroughput)},
	}, nil
}

func encodeDeleteTable(r *DeleteTableRequest) (otsprotocol.Message, error) {
	if err := requireTableName(r.TableName); err != nil {
		return nil, err
	}
	return &otsprotocol.DeleteTableRequest{TableName: r.TableName}, nil
}

func encodeUpdateTable(r *UpdateTableRequest) (otsprotocol.Message, error) {
	if err := requireTableName(r.TableName); err != nil {
		return nil, err
	}
	return &otsprotocol.UpdateTableRequest{
		TableName:          r.TableName,
		ReservedThroughput: &otsprotocol.ReservedThroughput{CapacityUnit: encodeCapacityUnit(r.ReservedThroughput)},
	}, nil
}

func encodeDescribeTable(r *DescribeTableRequest) (otsprotocol.Message, error) {
	if err := requireTableName(r.TableName); err != nil {
		return nil, err
	}
	return &otsprotocol.DescribeTableRequest{TableName: r.TableName}, nil
}

func encodeListTable(*ListTableRequest) (otsprotocol.Message, error) {
	return &otsprotocol.ListTableRequest{}, nil
}

// rowWrite is the part shared by every single-row and batched write.
type rowWrite struct {
	condition *otsprotocol.Condition
	pk        []*otsprotocol.Column
}

func encodeRowWrite(c model.Condition, pk model.PrimaryKey) (rowWrite, error) {
	cond, err := encodeCondition(c)
	if err != nil {
		return rowWrite{}, err
	}
	wirePK, err := encodePrimaryKey(pk)
	if err != nil {
		return rowWrite{}, err
	}
	return rowWrite{condition: cond, pk: wirePK}, nil
}

func encodePutRow(r *PutRowRequest) (otsprotocol.Message, error) {
	if err := requireTableName(r.TableName); err != nil {
		return nil, err
	}
	w, err := encodeRowWrite(r.Condition, r.PrimaryKey)
	if err != nil {
		return nil, err
	}
	attrs, err := encodeAttributes(r.Attributes)
	if err != nil {
		return nil, err
	}
	return &otsprotocol.PutRowRequest{
		TableName:        r.TableName,
		Condition:        w.condition,
		PrimaryKey:       w.pk,
		AttributeColumns: attrs,
	}, nil
}

func encodeGetRow(r *GetRowRequest) (otsprotocol.Message, error) {
	c := r.Criteria
	if err := requireTableName(c.TableName); err != nil {
		return nil, err
	}
	pk, err := encodePrimaryKey(c.PrimaryKey)
	if err != nil {
		return nil, err
	}
	filter, err := encodeFilter(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return &otsprotocol.GetRowRequest{
		TableName:    c.TableName,
		PrimaryKey:   pk,
		ColumnsToGet: c.ColumnsToGet,
		Filter:       filter,
	}, nil
}

// encodeColumnUpdates flattens an update into one list, puts first.
func encodeColumnUpdates(u model.UpdateOfAttribute) ([]*otsprotocol.ColumnUpdate, error) {
	puts, err := encodeAttributes(u.Puts)
	if err != nil {
		return nil, err
	}
	out := make([]*otsprotocol.ColumnUpdate, 0, len(puts)+len(u.Deletes))
	for _, p := range puts {
		out = append(out, &otsprotocol.ColumnUpdate{Type: otsprotocol.OperationTypePut, Name: p.Name, Value: p.Value})
	}
	for _, name := range u.Deletes {
		if name == "" {
			return nil, invalidArgf("attribute delete with empty column name")
		}
		out = append(out, &otsprotocol.ColumnUpdate{Type: otsprotocol.OperationTypeDelete, Name: name})
	}
	return out, nil
}

func encodeUpdateRow(r *UpdateRowRequest) (otsprotocol.Message, error) {
	if err := requireTableName(r.TableName); err != nil {
		return nil, err
	}
	w, err := encodeRowWrite(r.Condition, r.PrimaryKey)
	if err != nil {
		return nil, err
	}
	updates, err := encodeColumnUpdates(r.Update)
	if err != nil {
		return nil, err
	}
	return &otsprotocol.UpdateRowRequest{
		TableName:        r.TableName,
		Condition:        w.condition,
		PrimaryKey:       w.pk,
		AttributeColumns: updates,
	}, nil
}

func encodeDeleteRow(r *DeleteRowRequest) (otsprotocol.Message, error) {
	if err := requireTableName(r.TableName); err != nil {
		return nil, err
	}
	w, err := encodeRowWrite(r.Condition, r.PrimaryKey)
	if err != nil {
		return nil, err
	}
	return &otsprotocol.DeleteRowRequest{
		TableName:  r.TableName,
		Condition:  w.condition,
		PrimaryKey: w.pk,
	}, nil
}

// encodeBatchWriteRow keeps each table's put, update and delete lists in the
// caller's order; the decoder relies on it to index results.
func encodeBatchWriteRow(r *BatchWriteRowRequest) (otsprotocol.Message, error) {
	if len(r.Tables) == 0 {
		return nil, invalidArgf("batch write has no tables")
	}
	out := &otsprotocol.BatchWriteRowRequest{}
	for _, changes := range r.Tables {
		if changes == nil {
			return nil, invalidArgf("nil row changes in batch write")
		}
		if err := requireTableName(changes.TableName); err != nil {
			return nil, err
		}
		table := &otsprotocol.TableInBatchWriteRowRequest{TableName: changes.TableName}
		for i, put := range changes.Puts {
			w, err := encodeRowWrite(put.Condition, put.PrimaryKey)
			if err != nil {
				return nil, fmt.Errorf("table %q put %d: %w", changes.TableName, i, err)
			}
			attrs, err := encodeAttributes(put.Attributes)
			if err != nil {
				return nil, fmt.Errorf("table %q put %d: %w", changes.TableName, i, err)
			}
			table.PutRows = append(table.PutRows, &otsprotocol.PutRowInBatchWriteRowRequest{
				Condition:        w.condition,
				PrimaryKey:       w.pk,
				AttributeColumns: attrs,
			})
		}
		for i, upd := range changes.Updates {
			w, err := encodeRowWrite(upd.Condition, upd.PrimaryKey)
			if err != nil {
				return nil, fmt.Errorf("table %q update %d: %w", changes.TableName, i, err)
			}
			cols, err := encodeColumnUpdates(upd.Update)
			if err != nil {
				return nil, fmt.Errorf("table %q update %d: %w", changes.TableName, i, err)
			}
			table.UpdateRows = append(table.UpdateRows, &otsprotocol.UpdateRowInBatchWriteRowRequest{
				Condition:        w.condition,
				PrimaryKey:       w.pk,
				AttributeColumns: cols,
			})
		}
		for i, del := range changes.Deletes {
			w, err := encodeRowWrite(del.Condition, del.PrimaryKey)
			if err != nil {
				return nil, fmt.Errorf("table %q delete %d: %w", changes.TableName, i, err)
			}
			table.DeleteRows = append(table.DeleteRows, &otsprotocol.DeleteRowInBatchWriteRowRequest{
				Condition:  w.condition,
				PrimaryKey: w.pk,
			})
		}
		out.Tables = append(out.Tables, table)
	}
	return out, nil
}

func encodeBatchGetRow(r *BatchGetRowRequest) (otsprotocol.Message, error) {
	if len(r.Tables) == 0 {
		return nil, invalidArgf("batch get has no tables")
	}
	out := &otsprotocol.BatchGetRowRequest{}
	for _, c := range r.Tables {
		if c == nil {
			return nil, invalidArgf("nil criteria in batch get")
		}
		if err := requireTableName(c.TableName); err != nil {
			return nil, err
		}
		filter, err := encodeFilter(c.Filter)
		if err != nil {
			return nil, fmt.Errorf("table %q filter: %w", c.TableName, err)
		}
		table := &otsprotocol.TableInBatchGetRowRequest{
			TableName:    c.TableName,
			ColumnsToGet: c.ColumnsToGet,
			Filter:       filter,
		}
		for i, key := range c.RowKeys {
			pk, err := encodePrimaryKey(key)
			if err != nil {
				return nil, fmt.Errorf("table %q row %d: %w", c.TableName, i, err)
			}
			table.Rows = append(table.Rows, &otsprotocol.RowInBatchGetRowRequest{PrimaryKey: pk})
		}
		out.Tables = append(out.Tables, table)
	}
	return out, nil
}

func encodeDirection(d model.Direction) (otsprotocol.Direction, error) {
	switch d {
	case model.Forward:
		return otsprotocol.DirectionForward, nil
	case model.Backward:
		return otsprotocol.DirectionBackward, nil
	default:
		return 0, invalidArgf("unknown direction %v", d)
	}
}

func encodeGetRange(r *GetRangeRequest) (otsprotocol.Message, error) {
	c := r.Criteria
	if err := requireTableName(c.TableName); err != nil {
		return nil, err
	}
	dir, err := encodeDirection(c.Direction)
	if err != nil {
		return nil, err
	}
	start, err := encodeBoundary(c.InclusiveStartPrimaryKey)
	if err != nil {
		return nil, fmt.Errorf("start key: %w", err)
	}
	end, err := encodeBoundary(c.ExclusiveEndPrimaryKey)
	if err != nil {
		return nil, fmt.Errorf("end key: %w", err)
	}
	filter, err := encodeFilter(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	out := &otsprotocol.GetRangeRequest{
		TableName:                c.TableName,
		Direction:                dir,
		ColumnsToGet:             c.ColumnsToGet,
		InclusiveStartPrimaryKey: start,
		ExclusiveEndPrimaryKey:   end,
		Filter:                   filter,
	}
	if limit, ok := c.Limit.Get(); ok {
		if limit <= 0 {
			return nil, invalidArgf("limit must be positive, got %d", limit)
		}
		out.Limit = ptr(limit)
	}
	return out, nil
}
