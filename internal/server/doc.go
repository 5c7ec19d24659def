// Package server runs the document store's HTTP server, including signal
// handling and graceful shutdown.
package server
