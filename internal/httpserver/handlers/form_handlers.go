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
)

func ListPharmaceuticalForms(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var forms []models.PharmaceuticalForm
		if err := db.WithContext(r.Context()).Order("name asc").Find(&forms).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "pharmaceutical forms listed", forms)
	}
}

func GetPharmaceuticalForm(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f models.PharmaceuticalForm
		if err := db.WithContext(r.Context()).First(&f, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "pharmaceutical form not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "pharmaceutical form found", f)
	}
}

func CreatePharmaceuticalForm(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
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
		f := models.PharmaceuticalForm{Name: req.Name, Description: req.Description}
		if err := db.WithContext(r.Context()).Create(&f).Error; err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create pharmaceutical form", err.Error())
			return
		}
		respond.OK(w, "pharmaceutical form created", f)
	}
}

func UpdatePharmaceuticalForm(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		var f models.PharmaceuticalForm
		if err := db.WithContext(r.Context()).First(&f, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "pharmaceutical form not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			f.Name = *req.Name
		}
		if req.Description != nil {
			f.Description = *req.Description
		}
		if err := db.WithContext(r.Context()).Save(&f).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "pharmaceutical form updated", f)
	}
}

func DeletePharmaceuticalForm(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Delete(&models.PharmaceuticalForm{}, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "pharmaceutical form deleted", nil)
	}
}
