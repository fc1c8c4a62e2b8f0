package web

import (
	"context"
	"net/http"

	"github.com/wijvancees/fotobestel/internal/domain"
)

const (
	// sessionName matches the legacy cookie name clients already carry. The
	// cookie payload is signed, unlike the original raw-id scheme.
	sessionName = "user_id"

	sessionMaxAge = 7 * 24 * 60 * 60 // seconds
)

type contextKey int

const userContextKey contextKey = iota

// withUser resolves the session cookie to a user and attaches it to the
// request context. A cookie pointing at a deleted user is cleared so the
// client stops sending it.
func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A tampered or stale cookie yields an error and a fresh empty
		// session; anonymous is the right treatment for both.
		sess, _ := s.sessions.Get(r, sessionName)

		uid, _ := sess.Values["uid"].(string)
		if uid == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.accounts.ResolveSession(r.Context(), uid)
		if err != nil {
			s.logger.Error("failed to resolve session", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			s.clearSession(w, r)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the authenticated user attached by withUser, or nil.
func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

func (s *Server) setSession(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	sess, _ := s.sessions.Get(r, sessionName)
	sess.Values["uid"] = user.ID
	return sess.Save(r, w)
}

func (s *Server) clearSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.sessions.Get(r, sessionName)
	delete(sess.Values, "uid")
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
}
