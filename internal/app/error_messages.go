// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// document store handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies, stream error frames or log entries. Keeping them in
// one place ensures consistent wording throughout the API.
package app

const (
	// MsgInternalServerError replaces the message of any failure that is not
	// mapped to a specific error code, so internals never reach the client.
	MsgInternalServerError = "internal server error"

	// MsgRouteNotFound prefixes the body of requests to unknown paths.
	MsgRouteNotFound = "no route for"

	// MsgMethodNotAllowed prefixes the body of requests whose path exists
	// under a different method.
	MsgMethodNotAllowed = "method not allowed"

	// MsgStreamingUnsupported is logged when the response writer cannot
	// flush, which makes a listen stream impossible.
	MsgStreamingUnsupported = "streaming is not supported by the response writer"
)
