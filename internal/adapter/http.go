package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

const (
	documentsPath = "/v1/collections/{collection}/documents"
	documentPath  = "/v1/collections/{collection}/documents/{id}"
	listenPath    = "/v1/collections/{collection}/listen"
	healthPath    = "/v1/health"
)

type httpGateway struct {
	client *utils.HTTPClient
	// stream has no overall timeout; subscriptions live until disposed.
	stream *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPGateway constructs an HTTP/REST implementation of [RemoteGateway].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the request client with the resolved base URL and request
// timeout. Push subscriptions use a separate client without a timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPGateway(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteGateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	stream := utils.NewHTTPClient()
	stream.SetBaseURL(baseURL)

	return &httpGateway{client: client, stream: stream, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteGateway]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpGateway) currentToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// List implements [RemoteGateway]. It GETs
// /v1/collections/{collection}/documents with the filters and ordering of q
// encoded as query parameters.
func (h *httpGateway) List(ctx context.Context, q models.Query) ([]models.Document, error) {
	var result models.DocumentList

	resp, err := h.authedRequest(ctx, h.client).
		SetPathParam("collection", q.Collection).
		SetQueryParamsFromValues(q.Values()).
		SetResult(&result).
		Get(documentsPath)
	if err != nil {
		return nil, transportError("list request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return result.Documents, nil
}

// Create implements [RemoteGateway]. It POSTs w to
// /v1/collections/{collection}/documents and returns the id from the 201
// response.
func (h *httpGateway) Create(ctx context.Context, collection string, w models.Write) (string, error) {
	var created models.CreatedDocument

	resp, err := h.authedRequest(ctx, h.client).
		SetHeader("Content-Type", "application/json").
		SetPathParam("collection", collection).
		SetBody(w).
		SetResult(&created).
		Post(documentsPath)
	if err != nil {
		return "", transportError("create request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: create response without id", ErrDecode)
	}

	return created.ID, nil
}

// Update implements [RemoteGateway]. It PATCHes w to
// /v1/collections/{collection}/documents/{id}.
func (h *httpGateway) Update(ctx context.Context, collection, id string, w models.Write) error {
	resp, err := h.authedRequest(ctx, h.client).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"collection": collection, "id": id}).
		SetBody(w).
		Patch(documentPath)
	if err != nil {
		return transportError("update request", err)
	}

	return mapHTTPError(resp)
}

// Delete implements [RemoteGateway]. It sends
// DELETE /v1/collections/{collection}/documents/{id}.
func (h *httpGateway) Delete(ctx context.Context, collection, id string) error {
	resp, err := h.authedRequest(ctx, h.client).
		SetPathParams(map[string]string{"collection": collection, "id": id}).
		Delete(documentPath)
	if err != nil {
		return transportError("delete request", err)
	}

	return mapHTTPError(resp)
}

// Ping implements [RemoteGateway] with GET /v1/health.
func (h *httpGateway) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return transportError("health request", err)
	}

	return mapHTTPError(resp)
}

func (h *httpGateway) authedRequest(ctx context.Context, client *utils.HTTPClient) *resty.Request {
	req := client.R().SetContext(ctx)
	if token := h.currentToken(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func transportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrNetworkFailure, op, err)
}

func decodeDocumentList(data []byte) ([]models.Document, error) {
	var list models.DocumentList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: snapshot: %w", ErrDecode, err)
	}
	return list.Documents, nil
}
