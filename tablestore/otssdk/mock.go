package otssdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/acksell/otskit/tablestore/model"
	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/acksell/otskit/tablestore/otsstore"
)

// NewMock returns a client backed by an in-memory store holding the given
// tables. It panics if the store cannot be opened.
func NewMock(tables ...model.TableMeta) *Client {
	t, err := NewMockTransport(tables...)
	if err != nil {
		panic(err)
	}
	return New(t)
}

// MockTransport serves requests from an in-process store, skipping HTTP but
// not the wire encoding.
type MockTransport struct {
	store *otsstore.Store
}

var _ Transport = &MockTransport{}

func NewMockTransport(tables ...model.TableMeta) (*MockTransport, error) {
	metas := make([]*otsprotocol.TableMeta, 0, len(tables))
	for _, t := range tables {
		meta, err := encodeTableMeta(t)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	store, err := otsstore.New(otsstore.StoreOptions{InMemory: true}, metas...)
	if err != nil {
		return nil, fmt.Errorf("failed to open mock store: %w", err)
	}
	return &MockTransport{store: store}, nil
}

func (m *MockTransport) RoundTrip(ctx context.Context, apiName string, body []byte) (*HTTPResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reply := m.store.Serve(ctx, apiName, body)
	header := http.Header{}
	header.Set(otsprotocol.HeaderRequestID, reply.RequestID)
	return &HTTPResponse{StatusCode: reply.StatusCode, Header: header, Body: reply.Body}, nil
}

func (m *MockTransport) Close() error {
	return m.store.Close()
}
