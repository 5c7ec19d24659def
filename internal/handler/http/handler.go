package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/docstore"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/models"
)

// DocumentStore is the storage served over HTTP. actor is nil for
// anonymous requests.
type DocumentStore interface {
	List(ctx context.Context, q models.Query) ([]models.Document, error)
	Create(ctx context.Context, actor *models.Identity, collection string, w models.Write) (string, error)
	Update(ctx context.Context, actor *models.Identity, collection, id string, w models.Write) error
	Delete(ctx context.Context, actor *models.Identity, collection, id string) error
	Listen(ctx context.Context, q models.Query) (*docstore.Listener, error)
}

type Handler struct {
	store DocumentStore

	tokenSignKey   string
	tokenIssuer    string
	requestTimeout time.Duration
	version        string

	logger *logger.Logger
}

func NewHandler(store DocumentStore, cfg config.DocstoreConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		store:          store,
		tokenSignKey:   cfg.Server.TokenSignKey,
		tokenIssuer:    cfg.Server.TokenIssuer,
		requestTimeout: cfg.Server.RequestTimeout,
		version:        cfg.Version,
		logger:         logger,
	}
}
