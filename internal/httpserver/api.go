package httpserver

import (
	"errors"
	"net/http"

	"visitscribe/internal/summary"
	"visitscribe/internal/visit"

	"log/slog"
)

// SummaryHandler serves POST /api: it validates the visit payload, opens the
// completion stream and relays the fragments as Server-Sent Events.
type SummaryHandler struct {
	summary *summary.Service
	logger  *slog.Logger
}

func NewSummaryHandler(svc *summary.Service, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{summary: svc, logger: logger}
}

func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec, err := visit.ParseRecord(r.Body)
	if err != nil {
		var missing *visit.MissingFieldError
		if errors.As(err, &missing) {
			WriteJSONError(w, http.StatusUnprocessableEntity, "validation_failed", missing.Error())
			return
		}
		WriteJSONError(w, http.StatusUnprocessableEntity, "validation_failed", "invalid visit payload")
		return
	}

	ctx := r.Context()
	fragments, err := h.summary.Generate(ctx, rec)
	if err != nil {
		h.logger.Error("completion stream failed to open", slog.String("error", err.Error()))
		WriteJSONError(w, http.StatusBadGateway, "provider_unavailable", "completion provider unavailable")
		return
	}

	relay, err := NewEventWriter(w)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "streaming_unsupported", "streaming unsupported")
		return
	}

	for fragment := range fragments {
		if fragment == "" {
			continue
		}
		if err := relay.WriteEvent(fragment); err != nil {
			// Client is gone; returning cancels ctx, which stops the
			// provider stream. No sentinel can reach anyone now.
			h.logger.Warn("response write failed mid-stream", slog.String("error", err.Error()))
			return
		}
	}

	// Always terminate the stream with the sentinel, including when the
	// fragment sequence was empty or ended early upstream.
	if err := relay.WriteDone(); err != nil {
		h.logger.Warn("failed to write stream sentinel", slog.String("error", err.Error()))
	}
}
