package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"farmacore/internal/auth"
	"farmacore/internal/config"
	"farmacore/internal/respond"
	"farmacore/internal/service"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the user and sets the token cookie alongside the
// envelope body.
func Login(svc *service.AuthService, cfg config.Config, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			respond.Fail(w, http.StatusBadRequest, "email is required", nil)
			return
		}
		if req.Password == "" {
			respond.Fail(w, http.StatusBadRequest, "password is required", nil)
			return
		}

		result, err := svc.Login(r.Context(), req.Email, req.Password, r.UserAgent(), r.RemoteAddr)
		if err != nil {
			respond.Err(w, lg, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    result.Token,
			Path:     "/",
			HttpOnly: true,
			Secure:   cfg.Production(),
			SameSite: http.SameSiteStrictMode,
			MaxAge:   int(cfg.TokenTTL.Seconds()),
		})
		respond.OK(w, "login successful", result)
	}
}

// Logout ends the caller's session. Repeating it with the same token is
// a no-op, not an error.
func Logout(svc *service.AuthService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if err := svc.Logout(r.Context(), token); err != nil {
			respond.Err(w, lg, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     "token",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
		respond.OK(w, "session closed", nil)
	}
}

func UserByEmail(svc *service.AuthService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.UserByEmail(r.Context(), chi.URLParam(r, "email"))
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "user found", user)
	}
}

func UserByID(svc *service.AuthService, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.UserByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "user found", user)
	}
}
