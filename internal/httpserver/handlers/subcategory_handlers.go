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

func ListSubcategories(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var subs []models.Subcategory
		if err := db.WithContext(r.Context()).Preload("Category").Order("name asc").Find(&subs).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "subcategories listed", subs)
	}
}

func GetSubcategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s models.Subcategory
		if err := db.WithContext(r.Context()).Preload("Category").First(&s, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "subcategory not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "subcategory found", s)
	}
}

func CreateSubcategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			CategoryID  string `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if strings.TrimSpace(req.Name) == "" || req.CategoryID == "" {
			respond.Fail(w, http.StatusBadRequest, "name and category_id are required", nil)
			return
		}
		if err := db.WithContext(r.Context()).First(&models.Category{}, "id = ?", req.CategoryID).Error; err != nil {
			respond.Fail(w, http.StatusNotFound, "category not found", nil)
			return
		}
		s := models.Subcategory{Name: req.Name, Description: req.Description, CategoryID: req.CategoryID}
		if err := db.WithContext(r.Context()).Create(&s).Error; err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create subcategory", err.Error())
			return
		}
		respond.OK(w, "subcategory created", s)
	}
}

func UpdateSubcategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			CategoryID  *string `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		var s models.Subcategory
		if err := db.WithContext(r.Context()).First(&s, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "subcategory not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			s.Name = *req.Name
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
		if req.CategoryID != nil {
			if err := db.WithContext(r.Context()).First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
				respond.Fail(w, http.StatusNotFound, "category not found", nil)
				return
			}
			s.CategoryID = *req.CategoryID
		}
		if err := db.WithContext(r.Context()).Save(&s).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "subcategory updated", s)
	}
}

func DeleteSubcategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Delete(&models.Subcategory{}, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "subcategory deleted", nil)
	}
}
