package server

import (
	"fmt"
	"net/http"

	"ecsrs/internal/lifecycle"
	"ecsrs/pkg/types"

	"github.com/alexedwards/flow"
)

type submitReportRequest struct {
	Category    types.ReportCategory `json:"category"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Address     *string              `json:"address,omitempty"`
	Latitude    *float64             `json:"latitude,omitempty"`
	Longitude   *float64             `json:"longitude,omitempty"`
	LGAID       string               `json:"lgaId"`
	MediaURLs   []string             `json:"mediaUrls,omitempty"`
	Priority    types.ReportPriority `json:"priority,omitempty"`
	IsAnonymous bool                 `json:"isAnonymous"`
}

type trackReportResponse struct {
	Report  *types.Report        `json:"report"`
	Updates []*types.ReportUpdate `json:"updates"`
}

func (s *Service) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	actor := s.actorFromContext(r.Context())

	report, err := s.engine.Submit(r.Context(), actor, lifecycle.SubmitInput{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		LGAID:       req.LGAID,
		MediaURLs:   req.MediaURLs,
		Priority:    req.Priority,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, report)
}

func (s *Service) handleTrackReport(w http.ResponseWriter, r *http.Request) {
	code := flow.Param(r.Context(), "code")

	report, updates, err := s.engine.TrackingLookup(r.Context(), code)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, trackReportResponse{Report: report, Updates: updates})
}

func (s *Service) handleListReports(w http.ResponseWriter, r *http.Request) {
	var filter types.ReportFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondError(w, fmt.Errorf("%w: invalid filter parameters", types.ErrValidation))
		return
	}

	if filter.Status != "" && !filter.Status.Valid() {
		s.respondError(w, fmt.Errorf("%w: unknown status %q", types.ErrValidation, filter.Status))
		return
	}

	actor := s.actorFromContext(r.Context())

	reports, err := s.engine.VisibleReports(r.Context(), actor, filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, reports)
}

func (s *Service) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")

	report, err := s.engine.Report(r.Context(), reportID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")

	updates, err := s.engine.History(r.Context(), reportID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updates)
}

const maxUploadBytes = 10 << 20

func (s *Service) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	actor := s.actorFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, fmt.Errorf("%w: invalid multipart payload", types.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: file field is required", types.ErrValidation))
		return
	}
	defer file.Close()

	url, err := s.media.Upload(r.Context(), actor.UserID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		s.logger.WithError(err).Error("failed to upload report media")
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
