package otsprotocol

type CreateTableRequest struct {
	TableMeta          *TableMeta
	ReservedThroughput *ReservedThroughput
}

func (m *CreateTableRequest) appendTo(b []byte) []byte {
	if m.TableMeta != nil {
		b = appendMessage(b, 1, m.TableMeta)
	}
	if m.ReservedThroughput != nil {
		b = appendMessage(b, 2, m.ReservedThroughput)
	}
	return b
}

func (m *CreateTableRequest) Unmarshal(b []byte) error {
	*m = CreateTableRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableMeta = readMessage[TableMeta](d)
		case 2:
			m.ReservedThroughput = readMessage[ReservedThroughput](d)
		default:
			d.skip()
		}
	}
	return d.err
}

// emptyMessage is shared by the responses that carry no fields.
type emptyMessage struct{}

func (emptyMessage) appendTo(b []byte) []byte { return b }

func (emptyMessage) Unmarshal(b []byte) error {
	d := newDecoder(b)
	for d.next() {
		d.skip()
	}
	return d.err
}

type CreateTableResponse struct{ emptyMessage }

type DeleteTableResponse struct{ emptyMessage }

type ListTableRequest struct{ emptyMessage }

type DeleteTableRequest struct {
	TableName string
}

func (m *DeleteTableRequest) appendTo(b []byte) []byte {
	return appendString(b, 1, m.TableName)
}

func (m *DeleteTableRequest) Unmarshal(b []byte) error {
	*m = DeleteTableRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		default:
			d.skip()
		}
	}
	return d.err
}

// DescribeTableRequest has the same wire shape as DeleteTableRequest.
type DescribeTableRequest struct {
	TableName string
}

func (m *DescribeTableRequest) appendTo(b []byte) []byte {
	return appendString(b, 1, m.TableName)
}

func (m *DescribeTableRequest) Unmarshal(b []byte) error {
	*m = DescribeTableRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		default:
			d.skip()
		}
	}
	return d.err
}

type UpdateTableRequest struct {
	TableName          string
	ReservedThroughput *ReservedThroughput
}

func (m *UpdateTableRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, m.TableName)
	if m.ReservedThroughput != nil {
		b = appendMessage(b, 2, m.ReservedThroughput)
	}
	return b
}

func (m *UpdateTableRequest) Unmarshal(b []byte) error {
	*m = UpdateTableRequest{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableName = d.str()
		case 2:
			m.ReservedThroughput = readMessage[ReservedThroughput](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type UpdateTableResponse struct {
	ReservedThroughputDetails *ReservedThroughputDetails
}

func (m *UpdateTableResponse) appendTo(b []byte) []byte {
	if m.ReservedThroughputDetails != nil {
		b = appendMessage(b, 1, m.ReservedThroughputDetails)
	}
	return b
}

func (m *UpdateTableResponse) Unmarshal(b []byte) error {
	*m = UpdateTableResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.ReservedThroughputDetails = readMessage[ReservedThroughputDetails](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type DescribeTableResponse struct {
	TableMeta                 *TableMeta
	ReservedThroughputDetails *ReservedThroughputDetails
}

func (m *DescribeTableResponse) appendTo(b []byte) []byte {
	if m.TableMeta != nil {
		b = appendMessage(b, 1, m.TableMeta)
	}
	if m.ReservedThroughputDetails != nil {
		b = appendMessage(b, 2, m.ReservedThroughputDetails)
	}
	return b
}

func (m *DescribeTableResponse) Unmarshal(b []byte) error {
	*m = DescribeTableResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableMeta = readMessage[TableMeta](d)
		case 2:
			m.ReservedThroughputDetails = readMessage[ReservedThroughputDetails](d)
		default:
			d.skip()
		}
	}
	return d.err
}

type ListTableResponse struct {
	TableNames []string
}

func (m *ListTableResponse) appendTo(b []byte) []byte {
	return appendStrings(b, 1, m.TableNames)
}

func (m *ListTableResponse) Unmarshal(b []byte) error {
	*m = ListTableResponse{}
	d := newDecoder(b)
	for d.next() {
		switch d.num {
		case 1:
			m.TableNames = append(m.TableNames, d.str())
		default:
			d.skip()
		}
	}
	return d.err
}
