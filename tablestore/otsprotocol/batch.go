package otsprotocol

type RowInBatchGetRowRequest struct {
	PrimaryKey []*Column
}

func (m *RowInBatchGetRowRequest) appendTo(b []byte) []byte {
	return appendMessages(b, 1, m.PrimaryKey)
}

func (m *RowInBatchGetRowRequest) Unmarshal(b []byte) error {
	*m = RowInBatchGetRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type TableInBatchGetRowRequest struct {
	TableName    string
	Rows         []*RowInBatchGetRowRequest
	ColumnsToGet []string
	Filter       *ColumnCondition
}

func (m *TableInBatchGetRowRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	b = appendMessages(b, 2, m.Rows)
	b = appendStrings(b, 3, m.ColumnsToGet)
	if m.Filter != nil {
		b = appendMessage(b, 4, m.Filter)
	}
	return b
}

func (m *TableInBatchGetRowRequest) Unmarshal(b []byte) error {
	*m = TableInBatchGetRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.Rows = append(m.Rows, readMessage[RowInBatchGetRowRequest](d))
		case 3:
			m.ColumnsToGet = append(m.ColumnsToGet, d.str())
		case 4:
			m.Filter = readMessage[ColumnCondition](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type BatchGetRowRequest struct {
	Tables []*TableInBatchGetRowRequest
}

func (m *BatchGetRowRequest) appendTo(b []byte) []byte {
	return appendMessages(b, 1, m.Tables)
}

func (m *BatchGetRowRequest) Unmarshal(b []byte) error {
	*m = BatchGetRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Tables = append(m.Tables, readMessage[TableInBatchGetRowRequest](d))
		default:
			d.skip()
		}
	}
	return d.err
}

// RowInBatchGetRowResponse reports one row of a batch read. IsOk defaults to
// true when absent from the wire.
type RowInBatchGetRowResponse struct {
	IsOk     bool
	Error    *Error
	Consumed *ConsumedCapacity
	Row      *Row
}

func (m *RowInBatchGetRowResponse) appendTo(b []byte) []byte {
	b = appendBool(b, 1, m.IsOk)
	if m.Error != nil {
		b = appendMessage(b, 2, m.Error)
	}
	if m.Consumed != nil {
		b = appendMessage(b, 3, m.Consumed)
	}
	if m.Row != nil {
		b = appendMessage(b, 4, m.Row)
	}
	return b
}

func (m *RowInBatchGetRowResponse) Unmarshal(b []byte) error {
	*m = RowInBatchGetRowResponse{IsOk: true}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.IsOk = d.boolean()
		case 2:
			m.Error = readMessage[Error](d)
		case 3:
			m.Consumed = readMessage[ConsumedCapacity](d)
		case 4:
			m.Row = readMessage[Row](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type TableInBatchGetRowResponse struct {
	TableName string
	Rows      []*RowInBatchGetRowResponse
}

func (m *TableInBatchGetRowResponse) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	return appendMessages(b, 2, m.Rows)
}

func (m *TableInBatchGetRowResponse) Unmarshal(b []byte) error {
	*m = TableInBatchGetRowResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.Rows = append(m.Rows, readMessage[RowInBatchGetRowResponse](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type BatchGetRowResponse struct {
	Tables []*TableInBatchGetRowResponse
}

func (m *BatchGetRowResponse) appendTo(b []byte) []byte {
	return appendMessages(b, 1, m.Tables)
}

func (m *BatchGetRowResponse) Unmarshal(b []byte) error {
	*m = BatchGetRowResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Tables = append(m.Tables, readMessage[TableInBatchGetRowResponse](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type PutRowInBatchWriteRowRequest struct {
	Condition        *Condition
	PrimaryKey       []*Column
	AttributeColumns []*Column
}

func (m *PutRowInBatchWriteRowRequest) appendTo(b []byte) []byte {
	if m.Condition != nil {
		b = appendMessage(b, 1, m.Condition)
	}
	b = appendMessages(b, 2, m.PrimaryKey)
	return appendMessages(b, 3, m.AttributeColumns)
}

func (m *PutRowInBatchWriteRowRequest) Unmarshal(b []byte) error {
	*m = PutRowInBatchWriteRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Condition = readMessage[Condition](d)
		case 2:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		case 3:
			m.AttributeColumns = append(m.AttributeColumns, readMessage[Column](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type UpdateRowInBatchWriteRowRequest struct {
	Condition        *Condition
	PrimaryKey       []*Column
	AttributeColumns []*ColumnUpdate
}

func (m *UpdateRowInBatchWriteRowRequest) appendTo(b []byte) []byte {
	if m.Condition != nil {
		b = appendMessage(b, 1, m.Condition)
	}
	b = appendMessages(b, 2, m.PrimaryKey)
	return appendMessages(b, 3, m.AttributeColumns)
}

func (m *UpdateRowInBatchWriteRowRequest) Unmarshal(b []byte) error {
	*m = UpdateRowInBatchWriteRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Condition = readMessage[Condition](d)
		case 2:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		case 3:
			m.AttributeColumns = append(m.AttributeColumns, readMessage[ColumnUpdate](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type DeleteRowInBatchWriteRowRequest struct {
	Condition  *Condition
	PrimaryKey []*Column
}

func (m *DeleteRowInBatchWriteRowRequest) appendTo(b []byte) []byte {
	if m.Condition != nil {
		b = appendMessage(b, 1, m.Condition)
	}
	return appendMessages(b, 2, m.PrimaryKey)
}

func (m *DeleteRowInBatchWriteRowRequest) Unmarshal(b []byte) error {
	*m = DeleteRowInBatchWriteRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Condition = readMessage[Condition](d)
		case 2:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type TableInBatchWriteRowRequest struct {
	TableName  string
	PutRows    []*PutRowInBatchWriteRowRequest
	UpdateRows []*UpdateRowInBatchWriteRowRequest
	DeleteRows []*DeleteRowInBatchWriteRowRequest
}

func (m *TableInBatchWriteRowRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	b = appendMessages(b, 2, m.PutRows)
	b = appendMessages(b, 3, m.UpdateRows)
	return appendMessages(b, 4, m.DeleteRows)
}

func (m *TableInBatchWriteRowRequest) Unmarshal(b []byte) error {
	*m = TableInBatchWriteRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.PutRows = append(m.PutRows, readMessage[PutRowInBatchWriteRowRequest](d))
		case 3:
			m.UpdateRows = append(m.UpdateRows, readMessage[UpdateRowInBatchWriteRowRequest](d))
		case 4:
			m.DeleteRows = append(m.DeleteRows, readMessage[DeleteRowInBatchWriteRowRequest](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type BatchWriteRowRequest struct {
	Tables []*TableInBatchWriteRowRequest
}

func (m *BatchWriteRowRequest) appendTo(b []byte) []byte {
	return appendMessages(b, 1, m.Tables)
}

func (m *BatchWriteRowRequest) Unmarshal(b []byte) error {
	*m = BatchWriteRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Tables = append(m.Tables, readMessage[TableInBatchWriteRowRequest](d))
		default:
			d.skip()
		}
	}
	return d.err
}

// RowInBatchWriteRowResponse reports one row of a batch write. IsOk defaults
// to true when absent from the wire.
type RowInBatchWriteRowResponse struct {
	IsOk     bool
	Error    *Error
	Consumed *ConsumedCapacity
}

func (m *RowInBatchWriteRowResponse) appendTo(b []byte) []byte {
	b = appendBool(b, 1, m.IsOk)
	if m.Error != nil {
		b = appendMessage(b, 2, m.Error)
	}
	if m.Consumed != nil {
		b = appendMessage(b, 3, m.Consumed)
	}
	return b
}

func (m *RowInBatchWriteRowResponse) Unmarshal(b []byte) error {
	*m = RowInBatchWriteRowResponse{IsOk: true}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.IsOk = d.boolean()
		case 2:
			m.Error = readMessage[Error](d)
		case 3:
			m.Consumed = readMessage[ConsumedCapacity](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type TableInBatchWriteRowResponse struct {
	TableName  string
	PutRows    []*RowInBatchWriteRowResponse
	UpdateRows []*RowInBatchWriteRowResponse
	DeleteRows []*RowInBatchWriteRowResponse
}

func (m *TableInBatchWriteRowResponse) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	b = appendMessages(b, 2, m.PutRows)
	b = appendMessages(b, 3, m.UpdateRows)
	return appendMessages(b, 4, m.DeleteRows)
}

func (m *TableInBatchWriteRowResponse) Unmarshal(b []byte) error {
	*m = TableInBatchWriteRowResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.PutRows = append(m.PutRows, readMessage[RowInBatchWriteRowResponse](d))
		case 3:
			m.UpdateRows = append(m.UpdateRows, readMessage[RowInBatchWriteRowResponse](d))
		case 4:
			m.DeleteRows = append(m.DeleteRows, readMessage[RowInBatchWriteRowResponse](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type BatchWriteRowResponse struct {
	Tables []*TableInBatchWriteRowResponse
}

func (m *BatchWriteRowResponse) appendTo(b []byte) []byte {
	return appendMessages(b, 1, m.Tables)
}

func (m *BatchWriteRowResponse) Unmarshal(b []byte) error {
	*m = BatchWriteRowResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Tables = append(m.Tables, readMessage[TableInBatchWriteRowResponse](d))
		default:
			d.skip()
		}
	}
	return d.err
}
