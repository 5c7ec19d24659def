package server

// Server is the document store process lifecycle.
//
// RunServer blocks until shutdown is requested. Shutdown stops accepting
// requests, ends open listen streams and drains in-flight requests.
type Server interface {
	RunServer()
	Shutdown()
}
