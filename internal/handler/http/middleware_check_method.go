// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-sync/internal/app"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
)

// routeNotFound replaces chi's plain-text 404 with the store's JSON error
// body so clients can decode every failure the same way.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, utils.ErrorBody{
		Code:    codeNotFound,
		Message: app.MsgRouteNotFound + " " + r.Method + " " + r.URL.Path,
	}, http.StatusNotFound)
}

// methodNotAllowed is registered via [chi.Mux.MethodNotAllowed] for paths
// that exist under a different method.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, utils.ErrorBody{
		Code:    codeInvalidArgument,
		Message: app.MsgMethodNotAllowed + ": " + r.Method + " " + r.URL.Path,
	}, http.StatusMethodNotAllowed)
}
