package otssdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/sirupsen/logrus"
)

// Context carries one request through the pipeline. It is never shared
// between requests.
type Context struct {
	ctx     context.Context
	APIName string
	Request any

	RequestBody []byte

	StatusCode   int
	Header       http.Header
	ResponseBody []byte

	// Response is the decoded response, or nil. DecodeErr records why the
	// decoder could not produce one; the error classifier decides whether
	// it matters.
	Response  any
	DecodeErr error
}

func NewContext(ctx context.Context, apiName string, req any) *Context {
	return &Context{ctx: ctx, APIName: apiName, Request: req}
}

func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// RequestID returns the server-assigned request id, or "" when the response
// has none.
func (c *Context) RequestID() string {
	if c.Header == nil {
		return ""
	}
	if id := c.Header.Get(otsprotocol.HeaderRequestID); id != "" {
		return id
	}
	for k, v := range c.Header {
		if strings.EqualFold(k, otsprotocol.HeaderRequestID) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Stage is one link of the pipeline. HandleBefore runs on the way to the
// transport, HandleAfter on the way back.
type Stage interface {
	HandleBefore(c *Context) error
	HandleAfter(c *Context) error
}

// Pipeline runs its stages in a fixed order: HandleBefore from first to last,
// then HandleAfter from last to first. The first error aborts the request.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

func (p *Pipeline) Execute(c *Context) error {
	for _, s := range p.stages {
		if err := s.HandleBefore(c); err != nil {
			return err
		}
	}
	for i := len(p.stages) - 1; i >= 0; i-- {
		if err := p.stages[i].HandleAfter(c); err != nil {
			return err
		}
	}
	return nil
}

// newDefaultPipeline builds Encoder, ErrorClassifier, Decoder, Transport.
//
// The decoder runs on every response before the classifier looks at the
// status. That keeps the decoder free of HTTP semantics, but a non-2xx body
// that happens to parse as the success message is decoded for nothing, and
// a malformed 2xx body that parses as a compatible shape goes unnoticed.
func newDefaultPipeline(t Transport, opts clientOpts) *Pipeline {
	return NewPipeline(
		&encoderStage{log: opts.debugLogger},
		&errorClassifierStage{log: opts.errorLogger},
		&decoderStage{log: opts.debugLogger},
		&transportStage{transport: t},
	)
}

type encoderStage struct {
	log logrus.FieldLogger
}

func (s *encoderStage) HandleBefore(c *Context) error {
	encode, ok := encoders[c.APIName]
	if !ok {
		return invalidArgf("unknown API %q", c.APIName)
	}
	msg, err := encode(c.Request)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", c.APIName, err)
	}
	c.RequestBody = otsprotocol.Marshal(msg)
	if s.log != nil {
		s.log.WithField("api", c.APIName).Debugf("OTS request: %s", otsprotocol.Text(msg))
	}
	return nil
}

func (s *encoderStage) HandleAfter(*Context) error { return nil }

type decoderStage struct {
	log logrus.FieldLogger
}

func (s *decoderStage) HandleBefore(*Context) error { return nil }

func (s *decoderStage) HandleAfter(c *Context) error {
	decode, ok := decoders[c.APIName]
	if !ok {
		c.DecodeErr = fmt.Errorf("no decoder for %s", c.APIName)
		return nil
	}
	msg, resp, err := decode(c.ResponseBody)
	if err != nil {
		c.DecodeErr = err
		return nil
	}
	c.Response = resp
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"api":        c.APIName,
			"request_id": c.RequestID(),
		}).Debugf("OTS response: %s", otsprotocol.Text(msg))
	}
	return nil
}

type errorClassifierStage struct {
	log logrus.FieldLogger
}

func (s *errorClassifierStage) HandleBefore(*Context) error { return nil }

func (s *errorClassifierStage) HandleAfter(c *Context) error {
	if c.StatusCode >= 200 && c.StatusCode < 300 {
		if c.DecodeErr != nil {
			return fmt.Errorf("decode %s response: %w", c.APIName, c.DecodeErr)
		}
		return nil
	}

	c.Response = nil
	err := classify(c)
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"api":         c.APIName,
			"status_code": err.StatusCode,
			"request_id":  err.RequestID,
		}).Error(err.Error())
	}
	return err
}

// classify builds the ServerError for a non-2xx response by reparsing its
// body as an error envelope.
func classify(c *Context) *ServerError {
	var envelope otsprotocol.Error
	if perr := envelope.Unmarshal(c.ResponseBody); perr != nil {
		return &ServerError{APIName: c.APIName, StatusCode: c.StatusCode}
	}
	return &ServerError{
		APIName:    c.APIName,
		StatusCode: c.StatusCode,
		Code:       envelope.Code,
		Message:    envelope.GetMessage(),
		RequestID:  c.RequestID(),
	}
}

type transportStage struct {
	transport Transport
}

func (s *transportStage) HandleBefore(c *Context) error {
	resp, err := s.transport.RoundTrip(c.Context(), c.APIName, c.RequestBody)
	if err != nil {
		return &TransportError{APIName: c.APIName, Err: err}
	}
	c.StatusCode = resp.StatusCode
	c.Header = resp.Header
	c.ResponseBody = resp.Body
	return nil
}

func (s *transportStage) HandleAfter(*Context) error { return nil }
