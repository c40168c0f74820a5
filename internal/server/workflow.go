package server

import (
	"net/http"

	"ecsrs/pkg/types"

	"github.com/alexedwards/flow"
)

type assignRequest struct {
	OfficerID string `json:"officerId"`
	Notes     string `json:"notes,omitempty"`
}

type resolveRequest struct {
	Notes     string   `json:"notes"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
}

type overrideStatusRequest struct {
	Status types.ReportStatus `json:"status"`
	Notes  string             `json:"notes,omitempty"`
}

func (s *Service) handleAssignReport(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	var req assignRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	report, err := s.engine.Assign(r.Context(), actor, reportID, req.OfficerID, req.Notes)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleUnassignReport(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	report, err := s.engine.Unassign(r.Context(), actor, reportID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleStartReport(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	report, err := s.engine.Start(r.Context(), actor, reportID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleResolveReport(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	var req resolveRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	report, err := s.engine.Resolve(r.Context(), actor, reportID, req.Notes, req.MediaURLs)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleCloseReport(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	report, err := s.engine.Close(r.Context(), actor, reportID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleOverrideStatus(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	var req overrideStatusRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	report, err := s.engine.OverrideStatus(r.Context(), actor, reportID, req.Status, req.Notes)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

type setPriorityRequest struct {
	Priority types.ReportPriority `json:"priority"`
}

func (s *Service) handleSetPriority(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	var req setPriorityRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	report, err := s.engine.SetPriority(r.Context(), actor, reportID, req.Priority)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Service) handleAssignableOfficers(w http.ResponseWriter, r *http.Request) {
	reportID := flow.Param(r.Context(), "reportID")
	actor := s.actorFromContext(r.Context())

	officers, err := s.engine.AssignableOfficers(r.Context(), actor, reportID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, officers)
}
