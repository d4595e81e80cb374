// Package otssdk is the client for the table store. Each operation runs
// through a fixed pipeline: the request is encoded to the wire schema, sent by
// a Transport, decoded, and classified into a typed response or error.
package otssdk

import (
	"context"
	"fmt"

	"github.com/acksell/otskit/tablestore/model"
	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/sirupsen/logrus"
)

type API interface {
	CreateTable(context.Context, *CreateTableRequest) (*CreateTableResponse, error)
	DeleteTable(context.Context, *DeleteTableRequest) (*DeleteTableResponse, error)
	UpdateTable(context.Context, *UpdateTableRequest) (*UpdateTableResponse, error)
	DescribeTable(context.Context, *DescribeTableRequest) (*DescribeTableResponse, error)
	ListTable(context.Context, *ListTableRequest) (*ListTableResponse, error)

	PutRow(context.Context, *PutRowRequest) (*PutRowResponse, error)
	GetRow(context.Context, *GetRowRequest) (*GetRowResponse, error)
	UpdateRow(context.Context, *UpdateRowRequest) (*UpdateRowResponse, error)
	DeleteRow(context.Context, *DeleteRowRequest) (*DeleteRowResponse, error)

	BatchWriteRow(context.Context, *BatchWriteRowRequest) (*BatchWriteRowResponse, error)
	BatchGetRow(context.Context, *BatchGetRowRequest) (*BatchGetRowResponse, error)
	GetRange(context.Context, *GetRangeRequest) (*GetRangeResponse, error)
}

type clientOpts struct {
	debugLogger logrus.FieldLogger
	errorLogger logrus.FieldLogger
}

type Option func(*clientOpts)

// WithDebugLogger traces every encoded request and decoded response at debug
// level.
func WithDebugLogger(l logrus.FieldLogger) Option {
	return func(o *clientOpts) { o.debugLogger = l }
}

// WithErrorLogger receives every ServerError before it is returned.
func WithErrorLogger(l logrus.FieldLogger) Option {
	return func(o *clientOpts) { o.errorLogger = l }
}

// New returns a client sending through t. It is safe for concurrent use if t
// is.
func New(t Transport, opts ...Option) *Client {
	var o clientOpts
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{pipeline: newDefaultPipeline(t, o)}
}

type Client struct {
	pipeline *Pipeline
}

var _ API = &Client{}

func invoke[R any](ctx context.Context, c *Client, apiName string, req any) (*R, error) {
	rc := NewContext(ctx, apiName, req)
	if err := c.pipeline.Execute(rc); err != nil {
		return nil, err
	}
	resp, ok := rc.Response.(*R)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response type %T", apiName, rc.Response)
	}
	return resp, nil
}

func (c *Client) CreateTable(ctx context.Context, req *CreateTableRequest) (*CreateTableResponse, error) {
	return invoke[CreateTableResponse](ctx, c, otsprotocol.APICreateTable, req)
}

func (c *Client) DeleteTable(ctx context.Context, req *DeleteTableRequest) (*DeleteTableResponse, error) {
	return invoke[DeleteTableResponse](ctx, c, otsprotocol.APIDeleteTable, req)
}

func (c *Client) UpdateTable(ctx context.Context, req *UpdateTableRequest) (*UpdateTableResponse, error) {
	return invoke[UpdateTableResponse](ctx, c, otsprotocol.APIUpdateTable, req)
}

func (c *Client) DescribeTable(ctx context.Context, req *DescribeTableRequest) (*DescribeTableResponse, error) {
	return invoke[DescribeTableResponse](ctx, c, otsprotocol.APIDescribeTable, req)
}

func (c *Client) ListTable(ctx context.Context, req *ListTableRequest) (*ListTableResponse, error) {
	if req == nil {
		req = &ListTableRequest{}
	}
	return invoke[ListTableResponse](ctx, c, otsprotocol.APIListTable, req)
}

func (c *Client) PutRow(ctx context.Context, req *PutRowRequest) (*PutRowResponse, error) {
	return invoke[PutRowResponse](ctx, c, otsprotocol.APIPutRow, req)
}

func (c *Client) GetRow(ctx context.Context, req *GetRowRequest) (*GetRowResponse, error) {
	return invoke[GetRowResponse](ctx, c, otsprotocol.APIGetRow, req)
}

func (c *Client) UpdateRow(ctx context.Context, req *UpdateRowRequest) (*UpdateRowResponse, error) {
	return invoke[UpdateRowResponse](ctx, c, otsprotocol.APIUpdateRow, req)
}

func (c *Client) DeleteRow(ctx context.Context, req *DeleteRowRequest) (*DeleteRowResponse, error) {
	return invoke[DeleteRowResponse](ctx, c, otsprotocol.APIDeleteRow, req)
}

// BatchWriteRow writes rows across tables. Rows fail individually: a nil
// error only means the batch was processed, so check Failed on the response.
func (c *Client) BatchWriteRow(ctx context.Context, req *BatchWriteRowRequest) (*BatchWriteRowResponse, error) {
	return invoke[BatchWriteRowResponse](ctx, c, otsprotocol.APIBatchWriteRow, req)
}

// BatchGetRow reads rows across tables. As with BatchWriteRow, individual
// rows may fail while the call succeeds.
func (c *Client) BatchGetRow(ctx context.Context, req *BatchGetRowRequest) (*BatchGetRowResponse, error) {
	return invoke[BatchGetRowResponse](ctx, c, otsprotocol.APIBatchGetRow, req)
}

func (c *Client) GetRange(ctx context.Context, req *GetRangeRequest) (*GetRangeResponse, error) {
	return invoke[GetRangeResponse](ctx, c, otsprotocol.APIGetRange, req)
}

// GetRangeAll follows continuation keys until the range is exhausted or the
// criteria's limit is reached. Consumed capacity is summed over all pages.
// NextStartPrimaryKey is only set when the limit stopped the scan early.
func (c *Client) GetRangeAll(ctx context.Context, req *GetRangeRequest) (*GetRangeResponse, error) {
	if req == nil {
		return nil, invalidArgf("nil GetRange request")
	}
	criteria := req.Criteria
	limit, limited := criteria.Limit.Get()

	out := &GetRangeResponse{}
	var read, write int32
	for {
		res, err := c.GetRange(ctx, &GetRangeRequest{Criteria: criteria})
		if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, res.Rows...)
		read += res.Consumed.Read.OrElse(0)
		write += res.Consumed.Write.OrElse(0)

		next, more := res.NextStartPrimaryKey.Get()
		if !more {
			break
		}
		if limited {
			if int32(len(out.Rows)) >= limit {
				out.NextStartPrimaryKey = res.NextStartPrimaryKey
				break
			}
			criteria.Limit = model.Some(limit - int32(len(out.Rows)))
		}
		criteria.InclusiveStartPrimaryKey = next
	}
	out.Consumed = model.NewCapacityUnit(read, write)
	return out, nil
}
