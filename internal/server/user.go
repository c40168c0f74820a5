package server

import (
	"fmt"
	"net/http"

	"ecsrs/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
)

type setRoleRequest struct {
	Role          types.Role `json:"role"`
	AssignedLGAID *string    `json:"assignedLgaId,omitempty"`
}

func (s *Service) handleListUserRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.rolesRepo.AllRoles(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, roles)
}

func (s *Service) handleSetUserRole(w http.ResponseWriter, r *http.Request) {
	userID := flow.Param(r.Context(), "userID")

	var req setRoleRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	if !req.Role.Valid() {
		s.respondError(w, fmt.Errorf("%w: unknown role %q", types.ErrValidation, req.Role))
		return
	}

	if req.Role != types.RoleFieldOfficer {
		req.AssignedLGAID = nil
	}

	if req.AssignedLGAID != nil {
		if _, err := s.lgaRepo.LGA(r.Context(), *req.AssignedLGAID); err != nil {
			s.respondError(w, err)
			return
		}
	}

	role, err := s.rolesRepo.SetRole(r.Context(), userID, req.Role, req.AssignedLGAID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	actor := s.actorFromContext(r.Context())
	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"role":       req.Role,
		"changed_by": actor.UserID,
	}).Info("user role updated")

	s.respondJSON(w, http.StatusOK, role)
}

func (s *Service) handleListLGAs(w http.ResponseWriter, r *http.Request) {
	lgas, err := s.lgaRepo.AllLGAs(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, lgas)
}
