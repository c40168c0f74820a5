package server

import (
	"fmt"
	"net/http"

	"ecsrs/pkg/types"
)

// handlePublicStats serves the aggregate dashboard numbers. It is
// intentionally unauthenticated; the summary exposes counts only,
// never report contents.
func (s *Service) handlePublicStats(w http.ResponseWriter, r *http.Request) {
	var filter types.ReportFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondError(w, fmt.Errorf("%w: invalid filter parameters", types.ErrValidation))
		return
	}

	// Reporter scoping is a private-list concern, never a public one.
	filter.Reporter = ""

	summary, err := s.stats.Summary(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, summary)
}
