// Package http implements the REST and server-sent events surface of the
// reference document store.
//
// It exposes route wiring, request handlers, and middleware. Optional bearer
// authentication, request tracing, access logging and response compression
// are handled in this package before requests reach the store.
package http
