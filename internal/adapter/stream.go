package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-blog-sync/models"
)

const (
	eventSnapshot = "snapshot"
	eventError    = "error"

	maxFrameSize = 8 << 20
)

// subscription owns one push stream. The reader goroutine is the only
// caller of the callbacks; cancel stops it and silences any frame that is
// already being processed.
type subscription struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func (s *subscription) unsubscribe() {
	s.once.Do(s.cancel)
}

func (s *subscription) active() bool {
	return s.ctx.Err() == nil
}

// Subscribe implements [RemoteGateway]. It opens
// GET /v1/collections/{collection}/listen as a server-sent event stream and
// delivers every "snapshot" frame to onChange. The first "error" frame, a
// non-2xx response or an unexpected end of stream is reported once through
// onError.
func (h *httpGateway) Subscribe(ctx context.Context, q models.Query, onChange func([]models.Document), onError func(error)) Unsubscribe {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{ctx: subCtx, cancel: cancel}

	go h.listen(sub, q, onChange, onError)

	return sub.unsubscribe
}

func (h *httpGateway) listen(sub *subscription, q models.Query, onChange func([]models.Document), onError func(error)) {
	defer sub.unsubscribe()

	log := h.logger.GetChildLogger()
	fail := func(err error) {
		if !sub.active() {
			return
		}
		log.Warn().Err(err).
			Str("func", "httpGateway.listen").
			Str("collection", q.Collection).
			Msg("subscription failed")
		sub.unsubscribe()
		onError(err)
	}

	resp, err := h.authedRequest(sub.ctx, h.stream).
		SetHeader("Accept", "text/event-stream").
		SetPathParam("collection", q.Collection).
		SetQueryParamsFromValues(q.Values()).
		SetDoNotParseResponse(true).
		Get(listenPath)
	if err != nil {
		fail(transportError("listen request", err))
		return
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))
		fail(mapStatusError(resp.StatusCode(), raw))
		return
	}

	err = readEvents(body, func(event string, data []byte) bool {
		if !sub.active() {
			return false
		}

		switch event {
		case eventSnapshot:
			docs, err := decodeDocumentList(data)
			if err != nil {
				fail(err)
				return false
			}
			onChange(docs)
			return true
		case eventError:
			var se streamError
			if err := json.Unmarshal(data, &se); err != nil {
				fail(fmt.Errorf("%w: %s", ErrStream, bytes.TrimSpace(data)))
				return false
			}
			fail(mapStreamError(se))
			return false
		default:
			// keep-alives and unknown events
			return true
		}
	})

	switch {
	case err != nil:
		fail(transportError("listen stream", err))
	default:
		fail(fmt.Errorf("%w: stream closed by the store", ErrNetworkFailure))
	}
}

// readEvents parses a server-sent event stream, invoking handle for every
// dispatched event until it returns false or the stream ends. A nil error
// means the stream ended cleanly or handle stopped it.
func readEvents(r io.Reader, handle func(event string, data []byte) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxFrameSize)

	var (
		event string
		data  bytes.Buffer
	)
	for scanner.Scan() {
		line := scanner.Bytes()

		if len(line) == 0 {
			if data.Len() == 0 && event == "" {
				continue
			}
			if event == "" {
				event = "message"
			}
			if !handle(event, bytes.TrimSuffix(data.Bytes(), []byte("\n"))) {
				return nil
			}
			event = ""
			data.Reset()
			continue
		}

		field, value, _ := bytes.Cut(line, []byte(":"))
		value = bytes.TrimPrefix(value, []byte(" "))
		switch string(field) {
		case "":
			// comment line
		case "event":
			event = string(value)
		case "data":
			data.Write(value)
			data.WriteByte('\n')
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
