package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/handler"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates the document store server. onShutdown is called once
// when shutdown begins, before open connections are drained.
func NewServer(handlers *handler.Handlers, cfg config.DocstoreServer, onShutdown func(), logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPServer
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, onShutdown, logger),
		logger:     logger,
	}, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then shuts down
// gracefully.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) run(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.httpServer.RunServer()
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		<-stopped
	case <-stopped:
	}

	s.logger.Info().Msg("server Shutdown gracefully")
}
