package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/auth"
	"farmacore/internal/config"
	"farmacore/internal/models"
	"farmacore/internal/respond"
	"farmacore/internal/store"
)

func ListUsers(users *store.UserStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List(r.Context())
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "users listed", list)
	}
}

func GetUser(users *store.UserStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.ByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "user not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "user found", u)
	}
}

func CreateUser(users *store.UserStore, roles *store.RoleStore, cfg config.Config, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name                 string   `json:"name"`
			LastName             string   `json:"last_name"`
			Email                string   `json:"email"`
			Password             string   `json:"password"`
			IdentificationNumber string   `json:"identification_number"`
			Roles                []string `json:"roles"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			respond.Fail(w, http.StatusBadRequest, "email and password are required", nil)
			return
		}
		if req.Name == "" || req.LastName == "" {
			respond.Fail(w, http.StatusBadRequest, "name and last_name are required", nil)
			return
		}

		hash, err := auth.HashPassword(req.Password, cfg.BcryptCost)
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		u := models.User{
			Name:                 req.Name,
			LastName:             req.LastName,
			Email:                req.Email,
			Password:             hash,
			IdentificationNumber: req.IdentificationNumber,
			IsActive:             true,
		}
		if len(req.Roles) > 0 {
			assigned, err := roles.ByIDs(r.Context(), req.Roles)
			if err != nil {
				respond.Err(w, lg, err)
				return
			}
			u.Roles = assigned
		}
		if err := users.Create(r.Context(), &u); err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create user", err.Error())
			return
		}
		respond.OK(w, "user created", u)
	}
}

func UpdateUser(users *store.UserStore, roles *store.RoleStore, cfg config.Config, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name                 *string  `json:"name"`
			LastName             *string  `json:"last_name"`
			Email                *string  `json:"email"`
			Password             *string  `json:"password"`
			IdentificationNumber *string  `json:"identification_number"`
			IsActive             *bool    `json:"is_active"`
			Roles                []string `json:"roles"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		u, err := users.ByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "user not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.LastName != nil {
			u.LastName = *req.LastName
		}
		if req.Email != nil {
			u.Email = strings.TrimSpace(strings.ToLower(*req.Email))
		}
		if req.IdentificationNumber != nil {
			u.IdentificationNumber = *req.IdentificationNumber
		}
		if req.IsActive != nil {
			u.IsActive = *req.IsActive
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password, cfg.BcryptCost)
			if err != nil {
				respond.Err(w, lg, err)
				return
			}
			u.Password = hash
		}
		if req.Roles != nil {
			assigned, err := roles.ByIDs(r.Context(), req.Roles)
			if err != nil {
				respond.Err(w, lg, err)
				return
			}
			if err := users.ReplaceRoles(r.Context(), u, assigned); err != nil {
				respond.Err(w, lg, err)
				return
			}
		}
		if err := users.Save(r.Context(), u); err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "user updated", u)
	}
}

// DeleteUser removes the account and ends its sessions, so a deleted
// user's token dies at the session-liveness check. Both writes commit
// together; a failure cannot leave revoked sessions behind a live user.
func DeleteUser(db *gorm.DB, users *store.UserStore, sessions *store.SessionStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
			if err := sessions.WithTx(tx).DeactivateAllForUser(r.Context(), id, models.ReasonRevoked); err != nil {
				return err
			}
			return users.WithTx(tx).Delete(r.Context(), id)
		})
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "user deleted", nil)
	}
}
