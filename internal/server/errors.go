// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPServer is returned when there is no HTTP handler or listen
// address to serve the document store on.
var errNoHTTPServer = errors.New("document store has no HTTP handler or address")
