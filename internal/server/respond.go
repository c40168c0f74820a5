package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecsrs/pkg/types"
)

var errNoSubject = errors.New("no user ID in JWT subject claim")

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondErrorMessage(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorResponse{Error: msg})
}

// respondError maps the domain error taxonomy onto HTTP statuses in one
// place. Unknown errors are logged and hidden behind a 500.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrValidation):
		s.respondErrorMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, types.ErrUnauthorized):
		s.respondErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, types.ErrInvalidTransition):
		s.respondErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrConflict):
		s.respondErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrReportNotFound),
		errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrLGANotFound),
		errors.Is(err, types.ErrNewsNotFound):
		s.respondErrorMessage(w, http.StatusNotFound, err.Error())
	default:
		s.logger.WithError(err).Error("request failed")
		s.respondErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Service) decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return types.ErrValidation
	}
	return nil
}
