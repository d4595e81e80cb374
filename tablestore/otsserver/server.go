package otsserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/acksell/otskit/tablestore/otsstore"
	"github.com/sirupsen/logrus"
)

// ServerConfig configures the emulator server.
type ServerConfig struct {
	// Port is the HTTP port to listen on. Zero picks a free port.
	Port int
	// DataDir is the BadgerDB directory. Empty for in-memory mode.
	DataDir string
	// Tables are created at startup unless they already exist.
	Tables []*otsprotocol.TableMeta
	// Logger receives access and lifecycle logs. Required.
	Logger *logrus.Logger
}

// Server serves a store over HTTP until its context is cancelled.
type Server struct {
	config     ServerConfig
	store      *otsstore.Store
	httpServer *http.Server
	listener   net.Listener
}

// NewServer opens the store and binds the listener; Run starts serving.
func NewServer(config ServerConfig) (*Server, error) {
	if config.Logger == nil {
		return nil, errors.New("otsserver: logger is required")
	}
	store, err := otsstore.New(otsstore.StoreOptions{
		Path:     config.DataDir,
		InMemory: config.DataDir == "",
		Logger:   config.Logger,
	}, config.Tables...)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.Port))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("listening on port %d: %w", config.Port, err)
	}

	return &Server{
		config:   config,
		store:    store,
		listener: ln,
		httpServer: &http.Server{
			Handler:      NewHandler(store, config.Logger),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mode := "in-memory"
	if s.config.DataDir != "" {
		mode = s.config.DataDir
	}
	s.config.Logger.WithFields(logrus.Fields{
		"addr":   s.Addr(),
		"store":  mode,
		"tables": len(s.config.Tables),
	}).Info("OTS emulator listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		// ErrServerClosed means Shutdown ran and already closed the store.
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.store.Close()
		return err
	case <-ctx.Done():
	}

	s.config.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.store.Close()
}
