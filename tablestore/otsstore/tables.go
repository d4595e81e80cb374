package otsstore

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/dgraph-io/badger/v4"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,254}$`)

func checkName(kind, name string) error {
	if !namePattern.MatchString(name) {
		return errParam("Invalid %s name: '%s'.", kind, name)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// loadTable reads the stored table record: its meta and reserved throughput.
func (s *Store) loadTable(txn *badger.Txn, name string) (*otsprotocol.DescribeTableResponse, error) {
	item, err := txn.Get(metaKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errTableNotExist(name)
	}
	if err != nil {
		return nil, err
	}
	var record otsprotocol.DescribeTableResponse
	if err := item.Value(record.Unmarshal); err != nil {
		return nil, fmt.Errorf("decode table %q: %w", name, err)
	}
	return &record, nil
}

func saveTable(txn *badger.Txn, record *otsprotocol.DescribeTableResponse) error {
	return txn.Set(metaKey(record.TableMeta.TableName), otsprotocol.Marshal(record))
}

func checkSchema(meta *otsprotocol.TableMeta) error {
	if err := checkName("table", meta.TableName); err != nil {
		return err
	}
	if len(meta.PrimaryKey) == 0 || len(meta.PrimaryKey) > maxPrimaryKeys {
		return errParam("The number of primary key columns must be in range: [1, %d].", maxPrimaryKeys)
	}
	seen := make(map[string]struct{}, len(meta.PrimaryKey))
	for _, col := range meta.PrimaryKey {
		if err := checkName("primary key", col.Name); err != nil {
			return err
		}
		if _, dup := seen[col.Name]; dup {
			return errParam("Duplicated primary key name: '%s'.", col.Name)
		}
		seen[col.Name] = struct{}{}
		switch col.Type {
		case otsprotocol.ColumnTypeInteger, otsprotocol.ColumnTypeString, otsprotocol.ColumnTypeBinary:
		default:
			return errParam("Type of primary key column '%s' must be INTEGER, STRING or BINARY, got %v.", col.Name, col.Type)
		}
	}
	return nil
}

func (s *Store) createTable(req *otsprotocol.CreateTableRequest) (otsprotocol.Message, error) {
	if req.TableMeta == nil {
		return nil, errParam("Table meta is required.")
	}
	if err := checkSchema(req.TableMeta); err != nil {
		return nil, err
	}

	var read, write int32
	if req.ReservedThroughput != nil && req.ReservedThroughput.CapacityUnit != nil {
		cu := req.ReservedThroughput.CapacityUnit
		if cu.Read != nil {
			read = *cu.Read
		}
		if cu.Write != nil {
			write = *cu.Write
		}
	}
	if read < 0 || write < 0 {
		return nil, errParam("Reserved throughput must not be negative.")
	}

	record := &otsprotocol.DescribeTableResponse{
		TableMeta: req.TableMeta,
		ReservedThroughputDetails: &otsprotocol.ReservedThroughputDetails{
			CapacityUnit:     &otsprotocol.CapacityUnit{Read: ptr(read), Write: ptr(write)},
			LastIncreaseTime: s.now().Unix(),
		},
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(metaKey(req.TableMeta.TableName))
		if err == nil {
			return errTableExists(req.TableMeta.TableName)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return saveTable(txn, record)
	})
	if err != nil {
		return nil, err
	}
	return &otsprotocol.CreateTableResponse{}, nil
}

func (s *Store) deleteTable(req *otsprotocol.DeleteTableRequest) (otsprotocol.Message, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := s.loadTable(txn, req.TableName); err != nil {
			return err
		}
		return txn.Delete(metaKey(req.TableName))
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.DropPrefix(tablePrefix(req.TableName)); err != nil {
		return nil, fmt.Errorf("drop rows of %q: %w", req.TableName, err)
	}
	return &otsprotocol.DeleteTableResponse{}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// updateTable applies a throughput change. Unset sides keep their value. Any
// raised side records an increase; any lowered side records a decrease, and
// the decrease counter restarts each UTC day.
func (s *Store) updateTable(req *otsprotocol.UpdateTableRequest) (otsprotocol.Message, error) {
	if req.ReservedThroughput == nil || req.ReservedThroughput.CapacityUnit == nil {
		return nil, errParam("Reserved throughput is required.")
	}
	cu := req.ReservedThroughput.CapacityUnit
	if cu.Read == nil && cu.Write == nil {
		return nil, errParam("At least one of read or write capacity must be set.")
	}
	if (cu.Read != nil && *cu.Read < 0) || (cu.Write != nil && *cu.Write < 0) {
		return nil, errParam("Reserved throughput must not be negative.")
	}

	var details *otsprotocol.ReservedThroughputDetails
	err := s.db.Update(func(txn *badger.Txn) error {
		record, err := s.loadTable(txn, req.TableName)
		if err != nil {
			return err
		}
		details = record.ReservedThroughputDetails
		current := details.CapacityUnit

		now := s.now()
		increased, decreased := false, false
		for _, side := range []struct{ cur, next *int32 }{{current.Read, cu.Read}, {current.Write, cu.Write}} {
			if side.next == nil {
				continue
			}
			switch {
			case *side.next > *side.cur:
				increased = true
			case *side.next < *side.cur:
				decreased = true
			}
		}
		if cu.Read != nil {
			current.Read = ptr(*cu.Read)
		}
		if cu.Write != nil {
			current.Write = ptr(*cu.Write)
		}
		if increased {
			details.LastIncreaseTime = now.Unix()
		}
		if decreased {
			if details.LastDecreaseTime == nil || !sameDay(time.Unix(*details.LastDecreaseTime, 0), now) {
				details.NumberOfDecreasesToday = 0
			}
			details.LastDecreaseTime = ptr(now.Unix())
			details.NumberOfDecreasesToday++
		}
		return saveTable(txn, record)
	})
	if err != nil {
		return nil, err
	}
	return &otsprotocol.UpdateTableResponse{ReservedThroughputDetails: details}, nil
}

func (s *Store) describeTable(req *otsprotocol.DescribeTableRequest) (otsprotocol.Message, error) {
	var record *otsprotocol.DescribeTableResponse
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = s.loadTable(txn, req.TableName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) listTable(*otsprotocol.ListTableRequest) (otsprotocol.Message, error) {
	resp := &otsprotocol.ListTableResponse{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = metaPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			resp.TableNames = append(resp.TableNames, string(it.Item().Key()[len(metaPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
