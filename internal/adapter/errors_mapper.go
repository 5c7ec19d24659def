package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Stream error codes carried by "error" frames of a push subscription.
const (
	codeFailedPrecondition = "failed-precondition"
	codePermissionDenied   = "permission-denied"
	codeUnauthenticated    = "unauthenticated"
	codeUnavailable        = "unavailable"
	codeNotFound           = "not-found"
)

func mapHTTPError(resp *resty.Response) error {
	return mapStatusError(resp.StatusCode(), resp.Body())
}

func mapStatusError(status int, rawBody []byte) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(rawBody))
	if body == "" {
		body = http.StatusText(status)
	}

	if status == http.StatusPreconditionFailed || mentionsIndex(body) {
		return fmt.Errorf("%w: %s", ErrQueryUnsupported, body)
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: http %d: %s", ErrNetworkFailure, status, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		return fmt.Errorf("http %d: %s", status, body)
	}
}

// streamError is the payload of an "error" frame.
type streamError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mapStreamError(e streamError) error {
	if e.Code == codeFailedPrecondition || mentionsIndex(e.Message) {
		return fmt.Errorf("%w: %s", ErrQueryUnsupported, e.Message)
	}

	switch e.Code {
	case codePermissionDenied, codeUnauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
	case codeUnavailable:
		return fmt.Errorf("%w: %s", ErrNetworkFailure, e.Message)
	case codeNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, e.Message)
	default:
		return fmt.Errorf("%w: %s: %s", ErrStream, e.Code, e.Message)
	}
}

func mentionsIndex(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "index")
}
