package otsstore

import (
	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/dgraph-io/badger/v4"
)

func rowFailed(err error) *otsprotocol.RowInBatchWriteRowResponse {
	return &otsprotocol.RowInBatchWriteRowResponse{IsOk: false, Error: asItemError(err)}
}

func rowWritten() *otsprotocol.RowInBatchWriteRowResponse {
	return &otsprotocol.RowInBatchWriteRowResponse{IsOk: true, Consumed: writeCapacity()}
}

// writeOne applies a single batched row in its own transaction, so one row
// failing never rolls back its neighbours.
func (s *Store) writeOne(apply func(txn *badger.Txn) error) *otsprotocol.RowInBatchWriteRowResponse {
	if err := s.db.Update(apply); err != nil {
		return rowFailed(err)
	}
	return rowWritten()
}

// batchWriteRow applies every row independently and answers each one in
// request order. Only an oversized or malformed request fails as a whole.
func (s *Store) batchWriteRow(req *otsprotocol.BatchWriteRowRequest) (otsprotocol.Message, error) {
	total := 0
	seen := make(map[string]struct{}, len(req.Tables))
	for _, t := range req.Tables {
		if _, dup := seen[t.TableName]; dup {
			return nil, errParam("Table '%s' appears more than once in the batch.", t.TableName)
		}
		seen[t.TableName] = struct{}{}
		total += len(t.PutRows) + len(t.UpdateRows) + len(t.DeleteRows)
	}
	if total == 0 {
		return nil, errParam("No row in the batch.")
	}
	if total > maxBatchWriteRows {
		return nil, errParam("Rows count exceeds the upper limit: %d.", maxBatchWriteRows)
	}

	resp := &otsprotocol.BatchWriteRowResponse{}
	for _, t := range req.Tables {
		out := &otsprotocol.TableInBatchWriteRowResponse{TableName: t.TableName}
		for _, r := range t.PutRows {
			out.PutRows = append(out.PutRows, s.writeOne(func(txn *badger.Txn) error {
				return s.applyPut(txn, t.TableName, r.Condition, r.PrimaryKey, r.AttributeColumns)
			}))
		}
		for _, r := range t.UpdateRows {
			out.UpdateRows = append(out.UpdateRows, s.writeOne(func(txn *badger.Txn) error {
				return s.applyUpdate(txn, t.TableName, r.Condition, r.PrimaryKey, r.AttributeColumns)
			}))
		}
		for _, r := range t.DeleteRows {
			out.DeleteRows = append(out.DeleteRows, s.writeOne(func(txn *badger.Txn) error {
				return s.applyDelete(txn, t.TableName, r.Condition, r.PrimaryKey)
			}))
		}
		resp.Tables = append(resp.Tables, out)
	}
	return resp, nil
}

// batchGetRow reads every row from one snapshot. Missing tables and bad keys
// fail the rows concerned; absent rows succeed with an empty row.
func (s *Store) batchGetRow(req *otsprotocol.BatchGetRowRequest) (otsprotocol.Message, error) {
	total := 0
	for _, t := range req.Tables {
		total += len(t.Rows)
	}
	if total == 0 {
		return nil, errParam("No row in the batch.")
	}
	if total > maxBatchGetRows {
		return nil, errParam("Rows count exceeds the upper limit: %d.", maxBatchGetRows)
	}

	resp := &otsprotocol.BatchGetRowResponse{}
	err := s.db.View(func(txn *badger.Txn) error {
		for _, t := range req.Tables {
			out := &otsprotocol.TableInBatchGetRowResponse{TableName: t.TableName}
			filter, filterErr := parseFilter(t.Filter)
			for _, r := range t.Rows {
				if filterErr != nil {
					out.Rows = append(out.Rows, &otsprotocol.RowInBatchGetRowResponse{Error: asItemError(filterErr)})
					continue
				}
				row, err := s.lookupRow(txn, t.TableName, r.PrimaryKey, t.ColumnsToGet, filter)
				if err != nil {
					out.Rows = append(out.Rows, &otsprotocol.RowInBatchGetRowResponse{Error: asItemError(err)})
					continue
				}
				if row == nil {
					row = &otsprotocol.Row{}
				}
				out.Rows = append(out.Rows, &otsprotocol.RowInBatchGetRowResponse{IsOk: true, Consumed: readCapacity(1), Row: row})
			}
			resp.Tables = append(resp.Tables, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
