package handler

import (
	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/handler/http"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(store http.DocumentStore, cfg config.DocstoreConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(store, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
