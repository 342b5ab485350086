package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// doneSentinel is the payload of the final event of every stream. It is the
// authoritative end-of-stream signal; consumers must not rely on transport
// closure alone.
const doneSentinel = "[DONE]"

var errStreamingUnsupported = errors.New("response writer does not support streaming")

// EventWriter frames text fragments as Server-Sent Events and flushes each
// event as soon as it is written. Nothing is buffered across events. Not
// safe for concurrent use; one writer serves one response.
type EventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	failed  bool
}

// NewEventWriter prepares w for SSE output and sets the stream headers.
// It fails when the underlying writer cannot flush incrementally.
func NewEventWriter(w http.ResponseWriter) (*EventWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	return &EventWriter{w: w, flusher: flusher}, nil
}

// WriteEvent emits one fragment as a single SSE event. Each embedded newline
// starts a continuation "data:" line, so a consumer that joins the payload
// lines with "\n" reconstructs the fragment byte-for-byte. After the first
// write failure the writer goes inert: the transport is gone and there is
// nothing left to deliver to.
func (ew *EventWriter) WriteEvent(fragment string) error {
	if ew.failed {
		return errors.New("event writer already failed")
	}

	var b strings.Builder
	for _, line := range strings.Split(fragment, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(ew.w, b.String()); err != nil {
		ew.failed = true
		return err
	}
	ew.flusher.Flush()
	return nil
}

// WriteDone emits the [DONE] sentinel event.
func (ew *EventWriter) WriteDone() error {
	return ew.WriteEvent(doneSentinel)
}
