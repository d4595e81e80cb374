package otssdk

import (
	"github.com/acksell/otskit/tablestore/model"
)

type CreateTableRequest struct {
	TableMeta          model.TableMeta
	ReservedThroughput model.CapacityUnit
}

type CreateTableResponse struct{}

type DeleteTableRequest struct {
	TableName string
}

type DeleteTableResponse struct{}

// UpdateTableRequest changes the reserved throughput of a table. Leave a side
// of the capacity unit unset to keep its current value.
type UpdateTableRequest struct {
	TableName          string
	ReservedThroughput model.CapacityUnit
}

type UpdateTableResponse struct {
	ReservedThroughputDetails model.ReservedThroughputDetails
}

type DescribeTableRequest struct {
	TableName string
}

type DescribeTableResponse struct {
	TableMeta                 model.TableMeta
	ReservedThroughputDetails model.ReservedThroughputDetails
}

type ListTableRequest struct{}

type ListTableResponse struct {
	TableNames []string
}

type PutRowRequest struct {
	TableName  string
	Condition  model.Condition
	PrimaryKey model.PrimaryKey
	Attributes model.AttributeColumns
}

type PutRowResponse struct {
	Consumed model.CapacityUnit
}

type GetRowRequest struct {
	Criteria model.SingleRowQueryCriteria
}

// GetRowResponse holds the row, or nil when no row has the requested key.
type GetRowResponse struct {
	Consumed model.CapacityUnit
	Row      *model.Row
}

// UpdateRowRequest sets and removes attribute columns of one row. Puts are
// sent before deletes.
type UpdateRowRequest struct {
	TableName  string
	Condition  model.Condition
	PrimaryKey model.PrimaryKey
	Update     model.UpdateOfAttribute
}

type UpdateRowResponse struct {
	Consumed model.CapacityUnit
}

type DeleteRowRequest struct {
	TableName  string
	Condition  model.Condition
	PrimaryKey model.PrimaryKey
}

type DeleteRowResponse struct {
	Consumed model.CapacityUnit
}

type BatchWriteRowRequest struct {
	Tables []*model.RowChanges
}

func (r *BatchWriteRowRequest) Add(changes *model.RowChanges) *BatchWriteRowRequest {
	r.Tables = append(r.Tables, changes)
	return r
}

// WriteResult is the success payload of a batch write item.
type WriteResult struct {
	Consumed model.CapacityUnit
}

// BatchWriteItem is the outcome of one row of a batch write. Exactly one of
// Result and Error is set. Index is the row's position in the matching list
// of the request's RowChanges.
type BatchWriteItem struct {
	TableName string
	Index     int
	Result    *WriteResult
	Error     *ItemError
}

func (i BatchWriteItem) IsOK() bool { return i.Error == nil }

type TableBatchWriteResult struct {
	TableName string
	Puts      []BatchWriteItem
	Updates   []BatchWriteItem
	Deletes   []BatchWriteItem
}

// BatchWriteRowResponse lists per-table results in response order.
type BatchWriteRowResponse struct {
	Tables []TableBatchWriteResult
}

func (r *BatchWriteRowResponse) Table(name string) (TableBatchWriteResult, bool) {
	for _, t := range r.Tables {
		if t.TableName == name {
			return t, true
		}
	}
	return TableBatchWriteResult{}, false
}

// Failed returns every item whose write was rejected.
func (r *BatchWriteRowResponse) Failed() []BatchWriteItem {
	var out []BatchWriteItem
	for _, t := range r.Tables {
		for _, list := range [][]BatchWriteItem{t.Puts, t.Updates, t.Deletes} {
			for _, item := range list {
				if !item.IsOK() {
					out = append(out, item)
				}
			}
		}
	}
	return out
}

type BatchGetRowRequest struct {
	Tables []*model.MultiRowQueryCriteria
}

func (r *BatchGetRowRequest) Add(criteria *model.MultiRowQueryCriteria) *BatchGetRowRequest {
	r.Tables = append(r.Tables, criteria)
	return r
}

// RowResult is the success payload of a batch read item. Row is nil when the
// key matched nothing.
type RowResult struct {
	Consumed model.CapacityUnit
	Row      *model.Row
}

// BatchGetItem is the outcome of one key of a batch read. Exactly one of
// Result and Error is set.
type BatchGetItem struct {
	TableName string
	Index     int
	Result    *RowResult
	Error     *ItemError
}

func (i BatchGetItem) IsOK() bool { return i.Error == nil }

type TableBatchGetResult struct {
	TableName string
	Rows      []BatchGetItem
}

type BatchGetRowResponse struct {
	Tables []TableBatchGetResult
}

func (r *BatchGetRowResponse) Table(name string) (TableBatchGetResult, bool) {
	for _, t := range r.Tables {
		if t.TableName == name {
			return t, true
		}
	}
	return TableBatchGetResult{}, false
}

func (r *BatchGetRowResponse) Failed() []BatchGetItem {
	var out []BatchGetItem
	for _, t := range r.Tables {
		for _, item := range t.Rows {
			if !item.IsOK() {
				out = append(out, item)
			}
		}
	}
	return out
}

type GetRangeRequest struct {
	Criteria model.RangeRowQueryCriteria
}

// GetRangeResponse is one page of a range scan. NextStartPrimaryKey is unset
// once the range is exhausted; otherwise it is the inclusive start of the
// next page.
type GetRangeResponse struct {
	Consumed            model.CapacityUnit
	Rows                []model.Row
	NextStartPrimaryKey model.Optional[model.PrimaryKey]
}
