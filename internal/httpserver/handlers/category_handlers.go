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

func ListCategories(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cats []models.Category
		if err := db.WithContext(r.Context()).Order("name asc").Find(&cats).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "categories listed", cats)
	}
}

func GetCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Category
		if err := db.WithContext(r.Context()).First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "category not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "category found", c)
	}
}

func CreateCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
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
		c := models.Category{Name: req.Name, Description: req.Description}
		if err := db.WithContext(r.Context()).Create(&c).Error; err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create category", err.Error())
			return
		}
		respond.OK(w, "category created", c)
	}
}

func UpdateCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		var c models.Category
		if err := db.WithContext(r.Context()).First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "category not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if err := db.WithContext(r.Context()).Save(&c).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "category updated", c)
	}
}

func DeleteCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Delete(&models.Category{}, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "category deleted", nil)
	}
}
