package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"unicode/utf8"

	"github.com/dsmirnovs/notekeeper/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) validate() string {
	if n := utf8.RuneCountInString(r.Username); n < 3 || n > 120 {
		return "username must be between 3 and 120 characters"
	}
	if r.Email == "" || utf8.RuneCountInString(r.Email) > 255 {
		return "email must be between 1 and 255 characters"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "email must be a valid email address"
	}
	if utf8.RuneCountInString(r.Password) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.error(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg := req.validate(); msg != "" {
		s.error(w, r, msg, http.StatusBadRequest)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			s.error(w, r, "Username or email already exists.", http.StatusConflict)
			return
		}
		s.logger.Error(r.Context(), "error registering user", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, user, http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.error(w, r, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		s.error(w, r, "email and password are required", http.StatusBadRequest)
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.error(w, r, "Invalid email or password.", http.StatusUnauthorized)
			return
		}
		s.logger.Error(r.Context(), "error logging in", "error", err)
		s.error(w, r, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.respond(w, r, map[string]any{
		"access_token": result.AccessToken,
		"user":         result.User,
	}, http.StatusOK)
}
