package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-blog-sync/internal/app"
	"github.com/MKhiriev/go-blog-sync/internal/docstore"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

const (
	eventSnapshot = "snapshot"
	eventError    = "error"
)

var keepAliveInterval = 15 * time.Second

// listen serves a change feed as server-sent events: one "snapshot" frame
// with the full query result on open and after every commit that changes
// it, or a single "error" frame after which the stream ends.
func (h *Handler) listen(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	q, err := models.ParseQuery(chi.URLParam(r, "collection"), r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, ok := w.(http.Flusher); !ok {
		writeError(w, r, errors.New(app.MsgStreamingUnsupported))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	listener, err := h.store.Listen(r.Context(), q)
	if err != nil {
		log.Debug().Err(err).Str("collection", q.Collection).Msg("listen rejected")
		writeErrorEvent(w, err)
		return
	}
	defer listener.Close()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-listener.Ready():
			if err = writeSnapshots(w, listener.Next()); err != nil {
				log.Debug().Err(err).Msg("listener went away")
				return
			}
		case <-listener.Done():
			if err = writeSnapshots(w, listener.Next()); err == nil {
				writeErrorEvent(w, docstore.ErrStoreClosed)
			}
			return
		case <-keepAlive.C:
			if _, err = fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			w.(http.Flusher).Flush()
		}
	}
}

func writeSnapshots(w http.ResponseWriter, snapshots []models.DocumentList) error {
	for _, snapshot := range snapshots {
		if err := utils.WriteEvent(w, eventSnapshot, snapshot); err != nil {
			return err
		}
	}
	return nil
}

func writeErrorEvent(w http.ResponseWriter, err error) {
	body, _ := errorBody(err)
	utils.WriteEvent(w, eventError, body)
}
