// Package otsstore is an in-process table store that speaks the wire protocol.
// Tables and rows live in BadgerDB; Serve takes a raw request body for an API
// name and returns the raw response, exactly as a remote server would.
package otsstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	maxRangeRows      = 5000
	maxBatchWriteRows = 200
	maxBatchGetRows   = 100
	maxPrimaryKeys    = 4
)

// Store serves table store requests from a BadgerDB database.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// StoreOptions configures the BadgerDB store.
type StoreOptions struct {
	// Path to the database directory. If empty, uses in-memory mode.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger for BadgerDB. If nil, logging is disabled. A *logrus.Logger
	// satisfies it.
	Logger badger.Logger
}

// New opens the store and creates the given tables unless they already
// exist, which happens when reopening a persistent store.
func New(opts StoreOptions, tables ...*otsprotocol.TableMeta) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" || opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(opts.Logger)
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	s := &Store{db: db, now: time.Now}

	for _, meta := range tables {
		_, err := s.createTable(&otsprotocol.CreateTableRequest{TableMeta: meta})
		var svcErr *serviceError
		if errors.As(err, &svcErr) && svcErr.code == otsprotocol.ErrCodeObjectAlreadyExist {
			continue
		}
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("create table %q: %w", meta.TableName, err)
		}
	}
	return s, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reply is a wire response. Body is an API response message when StatusCode
// is 200 and an otsprotocol.Error otherwise.
type Reply struct {
	StatusCode int
	RequestID  string
	Body       []byte
}

type handlerFunc func(s *Store, body []byte) (otsprotocol.Message, error)

var handlers = map[string]handlerFunc{
	otsprotocol.APICreateTable:   handle((*Store).createTable),
	otsprotocol.APIDeleteTable:   handle((*Store).deleteTable),
	otsprotocol.APIUpdateTable:   handle((*Store).updateTable),
	otsprotocol.APIDescribeTable: handle((*Store).describeTable),
	otsprotocol.APIListTable:     handle((*Store).listTable),
	otsprotocol.APIPutRow:        handle((*Store).putRow),
	otsprotocol.APIGetRow:        handle((*Store).getRow),
	otsprotocol.APIUpdateRow:     handle((*Store).updateRow),
	otsprotocol.APIDeleteRow:     handle((*Store).deleteRow),
	otsprotocol.APIBatchWriteRow: handle((*Store).batchWriteRow),
	otsprotocol.APIBatchGetRow:   handle((*Store).batchGetRow),
	otsprotocol.APIGetRange:      handle((*Store).getRange),
}

func handle[Req any, PReq interface {
	*Req
	otsprotocol.Message
}](fn func(*Store, PReq) (otsprotocol.Message, error)) handlerFunc {
	return func(s *Store, body []byte) (otsprotocol.Message, error) {
		req := PReq(new(Req))
		if err := req.Unmarshal(body); err != nil {
			return nil, errParam("failed to parse request: %v", err)
		}
		return fn(s, req)
	}
}

// Serve handles one request. It never fails: every problem becomes an error
// reply.
func (s *Store) Serve(ctx context.Context, apiName string, body []byte) Reply {
	id := uuid.NewString()
	if err := ctx.Err(); err != nil {
		return errorReply(id, &serviceError{status: http.StatusServiceUnavailable, code: otsprotocol.ErrCodeInternalServer, message: err.Error()})
	}
	h, ok := handlers[apiName]
	if !ok {
		return errorReply(id, &serviceError{
			status:  http.StatusBadRequest,
			code:    otsprotocol.ErrCodeUnsupportOperation,
			message: fmt.Sprintf("unsupported operation %q", apiName),
		})
	}
	resp, err := h(s, body)
	if err != nil {
		return errorReply(id, err)
	}
	return Reply{StatusCode: http.StatusOK, RequestID: id, Body: otsprotocol.Marshal(resp)}
}

func errorReply(id string, err error) Reply {
	var svcErr *serviceError
	if !errors.As(err, &svcErr) {
		svcErr = &serviceError{status: http.StatusInternalServerError, code: otsprotocol.ErrCodeInternalServer, message: err.Error()}
	}
	return Reply{
		StatusCode: svcErr.status,
		RequestID:  id,
		Body:       otsprotocol.Marshal(svcErr.toProto()),
	}
}

// serviceError is a failure reported to the caller as an Error envelope.
type serviceError struct {
	status  int
	code    string
	message string
}

func (e *serviceError) Error() string {
	return e.code + ": " + e.message
}

func (e *serviceError) toProto() *otsprotocol.Error {
	msg := e.message
	return &otsprotocol.Error{Code: e.code, Message: &msg}
}

func errParam(format string, args ...any) *serviceError {
	return &serviceError{status: http.StatusBadRequest, code: otsprotocol.ErrCodeParameterInvalid, message: fmt.Sprintf(format, args...)}
}

func errTableNotExist(name string) *serviceError {
	return &serviceError{status: http.StatusNotFound, code: otsprotocol.ErrCodeObjectNotExist, message: fmt.Sprintf("Requested table %s does not exist.", name)}
}

func errTableExists(name string) *serviceError {
	return &serviceError{status: http.StatusConflict, code: otsprotocol.ErrCodeObjectAlreadyExist, message: fmt.Sprintf("Requested table %s already exists.", name)}
}

var errConditionFailed = &serviceError{status: http.StatusForbidden, code: otsprotocol.ErrCodeConditionCheckFail, message: "Condition check failed."}

// asItemError converts err for a batch row response.
func asItemError(err error) *otsprotocol.Error {
	var svcErr *serviceError
	if errors.As(err, &svcErr) {
		return svcErr.toProto()
	}
	msg := err.Error()
	return &otsprotocol.Error{Code: otsprotocol.ErrCodeInternalServer, Message: &msg}
}
