package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON error payload of the document store, shared by REST
// error responses and "error" stream frames.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON marshals data and writes it with the given status code and an
// application/json content type.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteEvent writes one server-sent event frame with a JSON data line and
// flushes it when w supports flushing.
func WriteEvent(w http.ResponseWriter, event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error writing event data to JSON: %w", err)
	}

	if _, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("error writing event: %w", err)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
