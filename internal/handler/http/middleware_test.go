package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/internal/app"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop(), tokenSignKey: testSignKey, tokenIssuer: testIssuer}
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "trace id from request header is reused", incoming: "my-custom-trace-id"},
		{name: "trace id generated when absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *http.Request
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { seen = r })

			req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			newTestHandler().withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
			require.NotNil(t, seen)
			assert.NotNil(t, zerolog.Ctx(seen.Context()))
		})
	}
}

func TestWithLogging_WritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/collections/posts/documents", nil)
	req = req.WithContext(l.WithContext(req.Context()))
	rr := httptest.NewRecorder()
	newTestHandler().withLogging(next).ServeHTTP(rr, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, float64(len("short and stout")), line["size"])
	assert.Equal(t, "/v1/collections/posts/documents", line["route"])
}

func TestResponseWriter_FlushPassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.Flush()
	w.WriteHeader(http.StatusInternalServerError)

	assert.True(t, rr.Flushed)
	assert.Equal(t, http.StatusOK, w.status, "the first status wins")
}

func TestAuth(t *testing.T) {
	valid, err := utils.GenerateJWTToken(testIssuer, readerIdentity, time.Hour, testSignKey)
	require.NoError(t, err)
	wrongKey, err := utils.GenerateJWTToken(testIssuer, readerIdentity, time.Hour, "other-key")
	require.NoError(t, err)
	wrongIssuer, err := utils.GenerateJWTToken("someone-else", readerIdentity, time.Hour, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  *models.Identity
	}{
		{name: "anonymous", wantStatus: http.StatusOK},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantActor: &readerIdentity},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "missing token", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor *models.Identity
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				actor = actorFromRequest(r)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/collections/posts/documents", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			newTestHandler().auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, called)
				var body utils.ErrorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, codeUnauthenticated, body.Code)
				return
			}
			require.True(t, called)
			if tt.wantActor == nil {
				assert.Nil(t, actor)
				return
			}
			require.NotNil(t, actor)
			assert.Equal(t, tt.wantActor.UserID, actor.UserID)
			assert.Equal(t, tt.wantActor.Email, actor.Email)
		})
	}
}

func TestStatusFromError(t *testing.T) {
	body, status := errorBody(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, codeInternal, body.Code)
	assert.NotContains(t, body.Message, assert.AnError.Error())
	assert.Equal(t, app.MsgInternalServerError, body.Message)
}
