package httpapi

import (
	"encoding/json"
	"net/http"
)

func (s *Server) respond(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(r.Context(), "error encoding response", "error", err)
	}
}

func (s *Server) error(w http.ResponseWriter, r *http.Request, message string, status int) {
	s.respond(w, r, map[string]string{"error": message}, status)
}
