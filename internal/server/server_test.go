package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/docstore"
	"github.com/MKhiriev/go-blog-sync/internal/handler"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

func newHandlers(t *testing.T, cfg config.DocstoreConfig) *handler.Handlers {
	t.Helper()
	h, err := handler.NewHandlers(docstore.NewStore(logger.Nop()), cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, config.DocstoreServer{HTTPAddress: ":0"}, nil, logger.Nop())
	assert.ErrorIs(t, err, errNoHTTPServer)

	_, err = NewServer(&handler.Handlers{}, config.DocstoreServer{HTTPAddress: ":0"}, nil, logger.Nop())
	assert.ErrorIs(t, err, errNoHTTPServer)
}

func TestServer_RunStopsOnCancelAndCallsOnShutdown(t *testing.T) {
	cfg := config.DocstoreConfig{Server: config.DocstoreServer{HTTPAddress: "127.0.0.1:0"}}
	shutdown := make(chan struct{})

	srv, err := NewServer(newHandlers(t, cfg), cfg.Server, func() { close(shutdown) }, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.(*server).run(ctx)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	select {
	case <-shutdown:
	case <-time.After(time.Second):
		t.Fatal("onShutdown was not called")
	}
}
