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

func ListActiveIngredients(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []models.ActiveIngredient
		if err := db.WithContext(r.Context()).Order("name asc").Find(&list).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "active ingredients listed", list)
	}
}

func GetActiveIngredient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a models.ActiveIngredient
		if err := db.WithContext(r.Context()).First(&a, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "active ingredient not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "active ingredient found", a)
	}
}

func CreateActiveIngredient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
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
		a := models.ActiveIngredient{Name: req.Name, Description: req.Description}
		if err := db.WithContext(r.Context()).Create(&a).Error; err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create active ingredient", err.Error())
			return
		}
		respond.OK(w, "active ingredient created", a)
	}
}

func UpdateActiveIngredient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		var a models.ActiveIngredient
		if err := db.WithContext(r.Context()).First(&a, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "active ingredient not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			a.Name = *req.Name
		}
		if req.Description != nil {
			a.Description = *req.Description
		}
		if err := db.WithContext(r.Context()).Save(&a).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "active ingredient updated", a)
	}
}

func DeleteActiveIngredient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Delete(&models.ActiveIngredient{}, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "active ingredient deleted", nil)
	}
}
