package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// handleEventStream pushes lifecycle events to the client over
// server-sent events until the request context is cancelled.
func (s *Service) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondErrorMessage(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := s.events.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.WithError(err).Error("failed to encode lifecycle event")
				continue
			}

			fmt.Fprintf(w, "event: report\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
