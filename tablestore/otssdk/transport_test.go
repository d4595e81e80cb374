package otssdk

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set(otsprotocol.HeaderRequestID, "req-7")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	transport := NewHTTPTransport(srv.URL+"/", "my-instance")
	transport.now = func() time.Time { return now }

	body := []byte("ping")
	resp, err := transport.RoundTrip(context.Background(), otsprotocol.APIGetRow, body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, []byte("pong"), resp.Body)
	assert.Equal(t, "req-7", resp.Header.Get(otsprotocol.HeaderRequestID))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, otsprotocol.APIGetRow, got.URL.Path)
	assert.Equal(t, body, gotBody)
	sum := md5.Sum(body)
	assert.Equal(t, base64.StdEncoding.EncodeToString(sum[:]), got.Header.Get(otsprotocol.HeaderContentMD5))
	assert.Equal(t, "my-instance", got.Header.Get(otsprotocol.HeaderInstanceName))
	assert.Equal(t, otsprotocol.APIVersion, got.Header.Get(otsprotocol.HeaderAPIVersion))
	assert.Equal(t, otsprotocol.ContentType, got.Header.Get("Content-Type"))
	assert.Equal(t, "Mon, 06 May 2024 07:08:09 GMT", got.Header.Get(otsprotocol.HeaderDate))
}

func TestHTTPTransport_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := New(NewHTTPTransport(srv.URL, "i", WithHTTPClient(srv.Client())))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListTable(ctx, nil)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
