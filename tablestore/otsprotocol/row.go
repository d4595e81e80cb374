package otsprotocol

type PutRowRequest struct {
	TableName        string
	Condition        *Condition
	PrimaryKey       []*Column
	AttributeColumns []*Column
}

func (m *PutRowRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	if m.Condition != nil {
		b = appendMessage(b, 2, m.Condition)
	}
	b = appendMessages(b, 3, m.PrimaryKey)
	return appendMessages(b, 4, m.AttributeColumns)
}

func (m *PutRowRequest) Unmarshal(b []byte) error {
	*m = PutRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.Condition = readMessage[Condition](d)
		case 3:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		case 4:
			m.AttributeColumns = append(m.AttributeColumns, readMessage[Column](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type UpdateRowRequest struct {
	TableName        string
	Condition        *Condition
	PrimaryKey       []*Column
	AttributeColumns []*ColumnUpdate
}

func (m *UpdateRowRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	if m.Condition != nil {
		b = appendMessage(b, 2, m.Condition)
	}
	b = appendMessages(b, 3, m.PrimaryKey)
	return appendMessages(b, 4, m.AttributeColumns)
}

func (m *UpdateRowRequest) Unmarshal(b []byte) error {
	*m = UpdateRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.Condition = readMessage[Condition](d)
		case 3:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		case 4:
			m.AttributeColumns = append(m.AttributeColumns, readMessage[ColumnUpdate](d))
		default:
			d.skip()
		}
	}
	return d.err
}

type DeleteRowRequest struct {
	TableName  string
	Condition  *Condition
	PrimaryKey []*Column
}

func (m *DeleteRowRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	if m.Condition != nil {
		b = appendMessage(b, 2, m.Condition)
	}
	return appendMessages(b, 3, m.PrimaryKey)
}

func (m *DeleteRowRequest) Unmarshal(b []byte) error {
	*m = DeleteRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.Condition = readMessage[Condition](d)
		case 3:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
		default:
			d.skip()
		}
	}
	return d.err
}

// WriteRowResponse is the shape shared by the PutRow, UpdateRow and DeleteRow
// responses.
type WriteRowResponse struct {
	Consumed *ConsumedCapacity
}

func (m *WriteRowResponse) appendTo(b []byte) []byte {
	if m.Consumed != nil {
		b = appendMessage(b, 1, m.Consumed)
	}
	return b
}

func (m *WriteRowResponse) Unmarshal(b []byte) error {
	*m = WriteRowResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Consumed = readMessage[ConsumedCapacity](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type (
	PutRowResponse    = WriteRowResponse
	UpdateRowResponse = WriteRowResponse
	DeleteRowResponse = WriteRowResponse
)

type GetRowRequest struct {
	TableName    string
	PrimaryKey   []*Column
	ColumnsToGet []string
	Filter       *ColumnCondition
}

func (m *GetRowRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	b = appendMessages(b, 2, m.PrimaryKey)
	b = appendStrings(b, 3, m.ColumnsToGet)
	if m.Filter != nil {
		b = appendMessage(b, 4, m.Filter)
	}
	return b
}

func (m *GetRowRequest) Unmarshal(b []byte) error {
	*m = GetRowRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.PrimaryKey = append(m.PrimaryKey, readMessage[Column](d))
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

type GetRowResponse struct {
	Consumed *ConsumedCapacity
	Row      *Row
}

func (m *GetRowResponse) appendTo(b []byte) []byte {
	if m.Consumed != nil {
		b = appendMessage(b, 1, m.Consumed)
	}
	if m.Row != nil {
		b = appendMessage(b, 2, m.Row)
	}
	return b
}

func (m *GetRowResponse) Unmarshal(b []byte) error {
	*m = GetRowResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Consumed = readMessage[ConsumedCapacity](d)
		case 2:
			m.Row = readMessage[Row](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type GetRangeRequest struct {
	TableName                string
	Direction                Direction
	ColumnsToGet             []string
	Limit                    *int32
	InclusiveStartPrimaryKey []*Column
	ExclusiveEndPrimaryKey   []*Column
	Filter                   *ColumnCondition
}

func (m *GetRangeRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	b = appendInt32(b, 2, int32(m.Direction))
	b = appendStrings(b, 3, m.ColumnsToGet)
	if m.Limit != nil {
		b = appendInt32(b, 4, *m.Limit)
	}
	b = appendMessages(b, 5, m.InclusiveStartPrimaryKey)
	b = appendMessages(b, 6, m.ExclusiveEndPrimaryKey)
	if m.Filter != nil {
		b = appendMessage(b, 7, m.Filter)
	}
	return b
}

func (m *GetRangeRequest) Unmarshal(b []byte) error {
	*m = GetRangeRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.Direction = Direction(d.i32())
		case 3:
			m.ColumnsToGet = append(m.ColumnsToGet, d.str())
		case 4:
			v := d.i32()
			m.Limit = &v
		case 5:
			m.InclusiveStartPrimaryKey = append(m.InclusiveStartPrimaryKey, readMessage[Column](d))
		case 6:
			m.ExclusiveEndPrimaryKey = append(m.ExclusiveEndPrimaryKey, readMessage[Column](d))
		case 7:
			m.Filter = readMessage[ColumnCondition](d)
		default:
			d.skip()
		}
	}
	return d.err
}

// GetRangeResponse pages a scan. An empty NextStartPrimaryKey means the range
// is exhausted.
type GetRangeResponse struct {
	Consumed            *ConsumedCapacity
	NextStartPrimaryKey []*Column
	Rows                []*Row
}

func (m *GetRangeResponse) appendTo(b []byte) []byte {
	if m.Consumed != nil {
		b = appendMessage(b, 1, m.Consumed)
	}
	b = appendMessages(b, 2, m.NextStartPrimaryKey)
	return appendMessages(b, 3, m.Rows)
}

func (m *GetRangeResponse) Unmarshal(b []byte) error {
	*m = GetRangeResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.Consumed = readMessage[ConsumedCapacity](d)
		case 2:
			m.NextStartPrimaryKey = append(m.NextStartPrimaryKey, readMessage[Column](d))
		case 3:
			m.Rows = append(m.Rows, readMessage[Row](d))
		default:
			d.skip()
		}
	}
	return d.err
}
