package otsstore

import (
	"bytes"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/dgraph-io/badger/v4"
)

// scanBounds is a validated GetRange request in key space.
type scanBounds struct {
	table    string
	backward bool
	start    []byte
	end      []byte
	limit    int
	columns  []string
	filter   rowFilter
}

// pastEnd reports whether key lies at or beyond the exclusive end.
func (b *scanBounds) pastEnd(key []byte) bool {
	c := bytes.Compare(key, b.end)
	if b.backward {
		return c <= 0
	}
	return c >= 0
}

func (s *Store) boundsOf(txn *badger.Txn, req *otsprotocol.GetRangeRequest) (*scanBounds, error) {
	record, err := s.loadTable(txn, req.TableName)
	if err != nil {
		return nil, err
	}
	b := &scanBounds{table: req.TableName, columns: req.ColumnsToGet, limit: maxRangeRows}
	switch req.Direction {
	case otsprotocol.DirectionForward:
	case otsprotocol.DirectionBackward:
		b.backward = true
	default:
		return nil, errParam("Invalid direction: %d.", req.Direction)
	}
	if req.Limit != nil {
		if *req.Limit <= 0 {
			return nil, errParam("The limit must be greater than 0.")
		}
		b.limit = min(int(*req.Limit), maxRangeRows)
	}

	for _, bound := range []struct {
		what string
		pk   []*otsprotocol.Column
		key  *[]byte
	}{
		{"inclusive start", req.InclusiveStartPrimaryKey, &b.start},
		{"exclusive end", req.ExclusiveEndPrimaryKey, &b.end},
	} {
		if len(bound.pk) == 0 {
			return nil, errParam("The %s primary key is required.", bound.what)
		}
		if err := checkPrimaryKey(record.TableMeta, bound.pk, true); err != nil {
			return nil, err
		}
		if *bound.key, err = rowKey(req.TableName, bound.pk); err != nil {
			return nil, errParam("%v", err)
		}
	}
	c := bytes.Compare(b.start, b.end)
	if (!b.backward && c > 0) || (b.backward && c < 0) {
		return nil, errParam("The start primary key must come before the end primary key in scan direction.")
	}

	if b.filter, err = parseFilter(req.Filter); err != nil {
		return nil, err
	}
	return b, nil
}

// getRange scans [start, end) in the requested direction. Once limit rows
// are collected, the key of the next row in range becomes the next start key;
// an exhausted range leaves it empty.
func (s *Store) getRange(req *otsprotocol.GetRangeRequest) (otsprotocol.Message, error) {
	resp := &otsprotocol.GetRangeResponse{}
	scanned := 0
	err := s.db.View(func(txn *badger.Txn) error {
		b, err := s.boundsOf(txn, req)
		if err != nil {
			return err
		}

		prefix := tablePrefix(b.table)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = b.backward
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(b.start); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if b.pastEnd(item.Key()) {
				break
			}
			var row *otsprotocol.Row
			if err := item.Value(func(val []byte) error {
				row, err = decodeRow(val)
				return err
			}); err != nil {
				return err
			}
			if len(resp.Rows) == b.limit {
				resp.NextStartPrimaryKey = row.PrimaryKeyColumns
				break
			}
			scanned++
			if b.filter != nil && !b.filter.match(rowView{row: row}) {
				continue
			}
			resp.Rows = append(resp.Rows, project(row, b.columns))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp.Consumed = readCapacity(scanned)
	return resp, nil
}
