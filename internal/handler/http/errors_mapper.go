package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog-sync/internal/app"
	"github.com/MKhiriev/go-blog-sync/internal/docstore"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

// Error codes carried by JSON error bodies and "error" stream frames.
const (
	codeInvalidArgument    = "invalid-argument"
	codeNotFound           = "not-found"
	codeUnauthenticated    = "unauthenticated"
	codePermissionDenied   = "permission-denied"
	codeFailedPrecondition = "failed-precondition"
	codeUnavailable        = "unavailable"
	codeDeadlineExceeded   = "deadline-exceeded"
	codeInternal           = "internal"
)

type errorStatus struct {
	status int
	code   string
}

var errorStatusMap = map[error]errorStatus{
	ErrInvalidAuthorizationHeader: {http.StatusUnauthorized, codeUnauthenticated},
	ErrInvalidToken:               {http.StatusUnauthorized, codeUnauthenticated},
	ErrInvalidRequestBody:         {http.StatusBadRequest, codeInvalidArgument},
	models.ErrInvalidQuery:        {http.StatusBadRequest, codeInvalidArgument},

	docstore.ErrNotFound:         {http.StatusNotFound, codeNotFound},
	docstore.ErrUnauthenticated:  {http.StatusUnauthorized, codeUnauthenticated},
	docstore.ErrPermissionDenied: {http.StatusForbidden, codePermissionDenied},
	docstore.ErrIndexRequired:    {http.StatusPreconditionFailed, codeFailedPrecondition},
	docstore.ErrInvalidWrite:     {http.StatusBadRequest, codeInvalidArgument},
	docstore.ErrStoreClosed:      {http.StatusServiceUnavailable, codeUnavailable},

	context.DeadlineExceeded: {http.StatusGatewayTimeout, codeDeadlineExceeded},
}

func statusFromError(err error) errorStatus {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return errorStatus{http.StatusInternalServerError, codeInternal}
}

// errorBody converts err into the wire error payload. Internal failures do
// not leak their message.
func errorBody(err error) (utils.ErrorBody, int) {
	es := statusFromError(err)
	msg := err.Error()
	if es.code == codeInternal {
		msg = app.MsgInternalServerError
	}
	return utils.ErrorBody{Code: es.code, Message: msg}, es.status
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	body, status := errorBody(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, body, status)
}
