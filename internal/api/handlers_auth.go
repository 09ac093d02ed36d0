package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicdesk/clinicdesk/internal/auth"
)

func loginHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		token, sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:  token,
			UserID: sess.UserID.String(),
			Email:  sess.Email,
		})
	}
}

func logoutHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), bearerToken(r)); err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, "invalid_token", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_session", "no session on request")
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{
			UserID:    sess.UserID,
			Email:     sess.Email,
			CreatedAt: sess.CreatedAt,
		})
	}
}
