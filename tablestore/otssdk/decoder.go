package otssdk

import (
	"fmt"

	"github.com/acksell/otskit/tablestore/model"
	"github.com/acksell/otskit/tablestore/otsprotocol"
)

// decodeFunc parses a response body. It returns the wire message for tracing
// alongside the typed response.
type decodeFunc func(body []byte) (otsprotocol.Message, any, error)

var decoders = map[string]decodeFunc{
	otsprotocol.APICreateTable:   decodeAs(decodeCreateTable),
	otsprotocol.APIDeleteTable:   decodeAs(decodeDeleteTable),
	otsprotocol.APIUpdateTable:   decodeAs(decodeUpdateTable),
	otsprotocol.APIDescribeTable: decodeAs(decodeDescribeTable),
	otsprotocol.APIListTable:     decodeAs(decodeListTable),
	otsprotocol.APIPutRow:        decodeAs(decodePutRow),
	otsprotocol.APIGetRow:        decodeAs(decodeGetRow),
	otsprotocol.APIUpdateRow:     decodeAs(decodeUpdateRow),
	otsprotocol.APIDeleteRow:     decodeAs(decodeDeleteRow),
	otsprotocol.APIBatchWriteRow: decodeAs(decodeBatchWriteRow),
	otsprotocol.APIBatchGetRow:   decodeAs(decodeBatchGetRow),
	otsprotocol.APIGetRange:      decodeAs(decodeGetRange),
}

func decodeAs[W any, PW interface {
	*W
	otsprotocol.Message
}, R any](fn func(*W) (*R, error)) decodeFunc {
	return func(body []byte) (otsprotocol.Message, any, error) {
		msg := PW(new(W))
		if err := msg.Unmarshal(body); err != nil {
			return nil, nil, err
		}
		resp, err := fn(msg)
		if err != nil {
			return msg, nil, err
		}
		return msg, resp, nil
	}
}

func decodeCreateTable(*otsprotocol.CreateTableResponse) (*CreateTableResponse, error) {
	return &CreateTableResponse{}, nil
}

func decodeDeleteTable(*otsprotocol.DeleteTableResponse) (*DeleteTableResponse, error) {
	return &DeleteTableResponse{}, nil
}

func decodeUpdateTable(w *otsprotocol.UpdateTableResponse) (*UpdateTableResponse, error) {
	return &UpdateTableResponse{
		ReservedThroughputDetails: decodeReservedThroughputDetails(w.ReservedThroughputDetails),
	}, nil
}

func decodeDescribeTable(w *otsprotocol.DescribeTableResponse) (*DescribeTableResponse, error) {
	meta, err := decodeTableMeta(w.TableMeta)
	if err != nil {
		return nil, err
	}
	return &DescribeTableResponse{
		TableMeta:                 meta,
		ReservedThroughputDetails: decodeReservedThroughputDetails(w.ReservedThroughputDetails),
	}, nil
}

func decodeListTable(w *otsprotocol.ListTableResponse) (*ListTableResponse, error) {
	return &ListTableResponse{TableNames: w.TableNames}, nil
}

func decodePutRow(w *otsprotocol.PutRowResponse) (*PutRowResponse, error) {
	return &PutRowResponse{Consumed: decodeConsumed(w.Consumed)}, nil
}

func decodeUpdateRow(w *otsprotocol.UpdateRowResponse) (*UpdateRowResponse, error) {
	return &UpdateRowResponse{Consumed: decodeConsumed(w.Consumed)}, nil
}

func decodeDeleteRow(w *otsprotocol.DeleteRowResponse) (*DeleteRowResponse, error) {
	return &DeleteRowResponse{Consumed: decodeConsumed(w.Consumed)}, nil
}

func decodeGetRow(w *otsprotocol.GetRowResponse) (*GetRowResponse, error) {
	row, err := decodeRow(w.Row)
	if err != nil {
		return nil, err
	}
	return &GetRowResponse{Consumed: decodeConsumed(w.Consumed), Row: row}, nil
}

func itemError(e *otsprotocol.Error) *ItemError {
	if e == nil {
		return &ItemError{}
	}
	return &ItemError{Code: e.Code, Message: e.GetMessage()}
}

// decodeWriteItems rebuilds positional indexes; the wire carries none.
func decodeWriteItems(table string, rows []*otsprotocol.RowInBatchWriteRowResponse) []BatchWriteItem {
	out := make([]BatchWriteItem, 0, len(rows))
	for i, row := range rows {
		item := BatchWriteItem{TableName: table, Index: i}
		if row.IsOk {
			item.Result = &WriteResult{Consumed: decodeConsumed(row.Consumed)}
		} else {
			item.Error = itemError(row.Error)
		}
		out = append(out, item)
	}
	return out
}

func decodeBatchWriteRow(w *otsprotocol.BatchWriteRowResponse) (*BatchWriteRowResponse, error) {
	out := &BatchWriteRowResponse{}
	for _, t := range w.Tables {
		out.Tables = append(out.Tables, TableBatchWriteResult{
			TableName: t.TableName,
			Puts:      decodeWriteItems(t.TableName, t.PutRows),
			Updates:   decodeWriteItems(t.TableName, t.UpdateRows),
			Deletes:   decodeWriteItems(t.TableName, t.DeleteRows),
		})
	}
	return out, nil
}

func decodeBatchGetRow(w *otsprotocol.BatchGetRowResponse) (*BatchGetRowResponse, error) {
	out := &BatchGetRowResponse{}
	for _, t := range w.Tables {
		result := TableBatchGetResult{TableName: t.TableName}
		for i, row := range t.Rows {
			item := BatchGetItem{TableName: t.TableName, Index: i}
			if row.IsOk {
				r, err := decodeRow(row.Row)
				if err != nil {
					return nil, fmt.Errorf("table %q row %d: %w", t.TableName, i, err)
				}
				item.Result = &RowResult{Consumed: decodeConsumed(row.Consumed), Row: r}
			} else {
				item.Error = itemError(row.Error)
			}
			result.Rows = append(result.Rows, item)
		}
		out.Tables = append(out.Tables, result)
	}
	return out, nil
}

func decodeGetRange(w *otsprotocol.GetRangeResponse) (*GetRangeResponse, error) {
	out := &GetRangeResponse{Consumed: decodeConsumed(w.Consumed)}
	for i, r := range w.Rows {
		row, err := decodeRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if row != nil {
			out.Rows = append(out.Rows, *row)
		}
	}
	next, err := decodeColumns(w.NextStartPrimaryKey)
	if err != nil {
		return nil, fmt.Errorf("next start key: %w", err)
	}
	if len(next) > 0 {
		out.NextStartPrimaryKey = model.Some(model.PrimaryKey(next))
	}
	return out, nil
}
