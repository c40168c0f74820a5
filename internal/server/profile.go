package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	actor := s.actorFromContext(r.Context())

	profile, err := s.profileRepo.ProfileByUserID(r.Context(), actor.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Service) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := s.actorFromContext(r.Context())

	var fields map[string]any
	if err := s.decodeBody(r, &fields); err != nil {
		s.respondError(w, err)
		return
	}

	updatable := map[string]string{
		"fullName": "full_name",
		"phone":    "phone",
		"lgaId":    "lga_id",
	}

	columns := map[string]any{}
	for key, value := range fields {
		column, ok := updatable[key]
		if !ok {
			s.respondErrorMessage(w, http.StatusUnprocessableEntity, "unknown field: "+key)
			return
		}
		columns[column] = value
	}

	if len(columns) == 0 {
		s.respondErrorMessage(w, http.StatusUnprocessableEntity, "no fields to update")
		return
	}

	profile, err := s.profileRepo.UpdateProfile(r.Context(), actor.UserID, columns)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

const maxAvatarBytes = 2 << 20

func (s *Service) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := s.actorFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		s.respondError(w, fmt.Errorf("%w: invalid multipart payload", types.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: file field is required", types.ErrValidation))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("avatars/%s/%s%s", actor.UserID, utils.NanoIDSize(8), ext)

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to upload avatar to S3")
		s.respondError(w, err)
		return
	}

	avatarURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.config.S3BucketName, key)

	profile, err := s.profileRepo.UpdateProfile(ctx, actor.UserID, map[string]any{"avatar_url": avatarURL})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Service) handleGetNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	actor := s.actorFromContext(r.Context())

	prefs, err := s.prefsRepo.PreferencesForUser(r.Context(), actor.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, prefs)
}

func (s *Service) handleSaveNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	actor := s.actorFromContext(r.Context())

	var prefs types.NotificationPreferences
	if err := s.decodeBody(r, &prefs); err != nil {
		s.respondError(w, err)
		return
	}

	// Callers cannot save preferences for anyone but themselves.
	prefs.UserID = actor.UserID

	if err := s.prefsRepo.SavePreferences(r.Context(), &prefs); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, prefs)
}
