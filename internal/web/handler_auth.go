package web

import (
	"net/http"
	"strings"

	"github.com/wijvancees/fotobestel/internal/domain"
)

type userBody struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		badRequest(w, "a valid email is required")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.setSession(w, r, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userBody{Success: true, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.accounts.Authenticate(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil {
		// Same body for unknown email and wrong password.
		writeJSON(w, http.StatusUnauthorized, errorBody{Success: false, Code: "UNAUTHORIZED", Error: "invalid email or password"})
		return
	}

	if err := s.setSession(w, r, user); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userBody{Success: true, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		s.writeError(w, r, domain.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, userBody{Success: true, User: user})
}

func (s *Server) handlePasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		badRequest(w, "email is required")
		return
	}

	if err := s.accounts.RequestPasswordReset(r.Context(), strings.TrimSpace(strings.ToLower(req.Email))); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Identical response whether or not the email is registered.
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Token == "" {
		badRequest(w, "token is required")
		return
	}

	if err := s.accounts.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
