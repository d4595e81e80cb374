// Package otsserver exposes an otsstore.Store over HTTP, so clients using
// otssdk.HTTPTransport can run against a local emulator.
package otsserver

import (
	"io"
	"net/http"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/acksell/otskit/tablestore/otsstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds a single request body.
const maxBodyBytes = 8 << 20

// NewHandler routes POST /<api> to the store. Every response carries the
// request id header, errors included.
func NewHandler(store *otsstore.Store, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(accessLog(log))
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Post("/{api}", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusRequestEntityTooLarge)
			return
		}
		reply := store.Serve(r.Context(), "/"+chi.URLParam(r, "api"), body)
		w.Header().Set("Content-Type", otsprotocol.ContentType)
		w.Header().Set(otsprotocol.HeaderRequestID, reply.RequestID)
		w.WriteHeader(reply.StatusCode)
		w.Write(reply.Body)
	})
	return r
}

// accessLog logs one line per request. A nil logger disables it.
func accessLog(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if log == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			entry := log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"request_id": ww.Header().Get(otsprotocol.HeaderRequestID),
			})
			if ww.Status() >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Info("request served")
		})
	}
}
