package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dsmirnovs/notekeeper/internal/common"
	"github.com/dsmirnovs/notekeeper/internal/server/models"
	"github.com/dsmirnovs/notekeeper/internal/server/services"
)

type createNoteRequest struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

type updateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

func validTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= 1 && n <= 255
}

func (s *Server) handleNotesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListNotes(w, r)
	case http.MethodPost:
		s.handleCreateNote(w, r)
	default:
		s.error(w, r, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleNoteDetail(w http.ResponseWriter, r *http.Request, id string) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		s.error(w, r, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	// Note ids are uuids. Anything else cannot exist, so it gets the same
	// 404 as a missing note.
	if _, err := uuid.Parse(id); err != nil {
		s.error(w, r, "Note not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetNote(w, r, ownerID, id)
	case http.MethodPut:
		s.handleUpdateNote(w, r, ownerID, id)
	case http.MethodDelete:
		s.handleDeleteNote(w, r, ownerID, id)
	default:
		s.error(w, r, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		s.error(w, r, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !validTitle(req.Title) {
		s.error(w, r, "title must be between 1 and 255 characters", http.StatusBadRequest)
		return
	}

	content := ""
	if req.Content != nil {
		content = *req.Content
	}

	note, err := s.notes.Create(r.Context(), ownerID, req.Title, content, req.Category)
	if err != nil {
		s.logger.Error(r.Context(), "error creating note", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, note, http.StatusCreated)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request, ownerID string, id string) {
	note, err := s.notes.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.error(w, r, "Note not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "error fetching note", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, note, http.StatusOK)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request, ownerID string, id string) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title != nil && !validTitle(*req.Title) {
		s.error(w, r, "title must be between 1 and 255 characters", http.StatusBadRequest)
		return
	}

	patch := models.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}

	note, err := s.notes.Update(r.Context(), ownerID, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.error(w, r, "Note not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "error updating note", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, note, http.StatusOK)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request, ownerID string, id string) {
	if err := s.notes.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.error(w, r, "Note not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "error deleting note", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, map[string]string{"message": "Note deleted successfully."}, http.StatusOK)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		s.error(w, r, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()

	// Sorting is descending unless desc is present with a value other than
	// "true".
	desc := true
	if v := query.Get("desc"); v != "" && v != "true" {
		desc = false
	}

	page, perPage := parsePagination(query)

	params := services.ListParams{
		Search:   query.Get("q"),
		Category: query.Get("category"),
		SortBy:   query.Get("sort"),
		Desc:     desc,
		Page:     page,
		PerPage:  perPage,
	}

	result, err := s.notes.List(r.Context(), ownerID, params)
	if err != nil {
		s.logger.Error(r.Context(), "error listing notes", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, result, http.StatusOK)
}

// parsePagination reads page and per_page together. A malformed value in
// either resets both to the defaults.
func parsePagination(query url.Values) (int, int) {
	page := services.DefaultPage
	perPage := services.DefaultPerPage

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return services.DefaultPage, services.DefaultPerPage
		}
		page = n
	}

	if v := query.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return services.DefaultPage, services.DefaultPerPage
		}
		perPage = n
	}

	return page, perPage
}
