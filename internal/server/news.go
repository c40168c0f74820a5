package server

import (
	"net/http"
	"strconv"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	"github.com/alexedwards/flow"
)

type newsRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Excerpt     *string `json:"excerpt,omitempty"`
	Category    *string `json:"category,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsPublished bool    `json:"isPublished"`
}

const defaultNewsLimit = 20

func (s *Service) handleListNews(w http.ResponseWriter, r *http.Request) {
	limit := uint64(defaultNewsLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	items, err := s.newsRepo.PublishedNews(r.Context(), limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, items)
}

func (s *Service) handleAdminListNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.newsRepo.AllNews(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, items)
}

func (s *Service) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	if req.Title == "" || req.Content == "" {
		s.respondErrorMessage(w, http.StatusUnprocessableEntity, "title and content are required")
		return
	}

	actor := s.actorFromContext(r.Context())

	item := &types.News{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
		AuthorID:    utils.StringPtr(actor.UserID),
	}

	if err := s.newsRepo.CreateNews(r.Context(), item); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Service) handleUpdateNews(w http.ResponseWriter, r *http.Request) {
	newsID := flow.Param(r.Context(), "newsID")

	var fields map[string]any
	if err := s.decodeBody(r, &fields); err != nil {
		s.respondError(w, err)
		return
	}

	updatable := map[string]string{
		"title":       "title",
		"content":     "content",
		"excerpt":     "excerpt",
		"category":    "category",
		"imageUrl":    "image_url",
		"isPublished": "is_published",
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

	item, err := s.newsRepo.UpdateNews(r.Context(), newsID, columns)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

func (s *Service) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	newsID := flow.Param(r.Context(), "newsID")

	if err := s.newsRepo.DeleteNews(r.Context(), newsID); err != nil {
		s.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
