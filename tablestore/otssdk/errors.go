package otssdk

import (
	"fmt"
	"strings"

	"github.com/acksell/otskit/tablestore/otsprotocol"
)

// InvalidArgumentError reports a request that has no wire representation:
// an unknown enum value, a sentinel in row data, a malformed condition tree.
// It is raised before anything is sent and always indicates a caller bug.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Message
}

func invalidArgf(format string, args ...any) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedColumnTypeError reports a column type tag in a response that
// this client does not know. The whole response is rejected.
type UnsupportedColumnTypeError struct {
	Tag otsprotocol.ColumnType
}

func (e *UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("unsupported column type tag %d", int32(e.Tag))
}

// TransportError wraps a failure of the Transport. It is never retried here.
type TransportError struct {
	APIName string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failed for %s: %v", e.APIName, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is raised for every non-2xx response. Code, Message and
// RequestID are empty when the server did not provide them; when the body
// was not a parseable error envelope only APIName and StatusCode are set.
type ServerError struct {
	APIName    string
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ServerError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed with status %d", e.APIName, e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&sb, ": %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&sb, " (request id %s)", e.RequestID)
	}
	return sb.String()
}

// ItemError is the failure of a single row inside a batch response. It is
// data on the response item, not a returned error.
type ItemError struct {
	Code    string
	Message string
}

func (e *ItemError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}
