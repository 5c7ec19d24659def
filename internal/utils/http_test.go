package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"id": "p1"}

	n, err := WriteJSON(w, data, http.StatusCreated)

	require.NoError(t, err)
	assert.NotZero(t, n)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	expected, _ := json.Marshal(data)
	assert.JSONEq(t, string(expected), w.Body.String())
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteEvent(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteEvent(w, "error", ErrorBody{Code: "unavailable", Message: "bye"}))

	assert.Equal(t, "event: error\ndata: {\"code\":\"unavailable\",\"message\":\"bye\"}\n\n", w.Body.String())
	assert.True(t, w.Flushed)
}

func TestWriteEvent_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()
	assert.Error(t, WriteEvent(w, "snapshot", make(chan int)))
	assert.Empty(t, w.Body.String())
}
