package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/models"
	"farmacore/internal/respond"
	"farmacore/internal/store"
)

func ListModules(modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := modules.List(r.Context())
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "modules listed", list)
	}
}

func GetModule(modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := modules.ByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "module not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "module found", m)
	}
}

func CreateModule(modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			respond.Fail(w, http.StatusBadRequest, "name is required", nil)
			return
		}
		m := models.Module{Name: req.Name, Description: req.Description}
		if err := modules.Create(r.Context(), &m); err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create module", err.Error())
			return
		}
		respond.OK(w, "module created", m)
	}
}

func UpdateModule(modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		m, err := modules.ByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "module not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.Description != nil {
			m.Description = *req.Description
		}
		if err := modules.Save(r.Context(), m); err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "module updated", m)
	}
}

func DeleteModule(modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := modules.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "module deleted", nil)
	}
}
