package otssdk

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
)

// Transport sends one encoded request and returns the raw response. A
// returned error means no response was received; non-2xx statuses are
// responses, not errors.
type Transport interface {
	RoundTrip(ctx context.Context, apiName string, body []byte) (*HTTPResponse, error)
}

type HTTPResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPTransport posts requests to <endpoint><apiName>. It does not sign
// requests.
type HTTPTransport struct {
	endpoint string
	instance string
	client   *http.Client
	now      func() time.Time
}

type HTTPOption func(*HTTPTransport)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) { t.client = c }
}

func NewHTTPTransport(endpoint, instanceName string, opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		endpoint: strings.TrimRight(endpoint, "/"),
		instance: instanceName,
		client:   http.DefaultClient,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var _ Transport = &HTTPTransport{}

func (t *HTTPTransport) RoundTrip(ctx context.Context, apiName string, body []byte) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+apiName, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	sum := md5.Sum(body)
	req.Header.Set("Content-Type", otsprotocol.ContentType)
	req.Header.Set(otsprotocol.HeaderInstanceName, t.instance)
	req.Header.Set(otsprotocol.HeaderAPIVersion, otsprotocol.APIVersion)
	req.Header.Set(otsprotocol.HeaderContentMD5, base64.StdEncoding.EncodeToString(sum[:]))
	req.Header.Set(otsprotocol.HeaderDate, t.now().UTC().Format(http.TimeFormat))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}, nil
}
