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

func ListConcentrations(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []models.Concentration
		if err := db.WithContext(r.Context()).Order("created_at desc").Find(&list).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "concentrations listed", list)
	}
}

func GetConcentration(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Concentration
		if err := db.WithContext(r.Context()).First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "concentration not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "concentration found", c)
	}
}

func CreateConcentration(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value string `json:"value"`
			Unit  string `json:"unit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if strings.TrimSpace(req.Value) == "" || strings.TrimSpace(req.Unit) == "" {
			respond.Fail(w, http.StatusBadRequest, "value and unit are required", nil)
			return
		}
		c := models.Concentration{Value: req.Value, Unit: req.Unit}
		if err := db.WithContext(r.Context()).Create(&c).Error; err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create concentration", err.Error())
			return
		}
		respond.OK(w, "concentration created", c)
	}
}

func UpdateConcentration(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value *string `json:"value"`
			Unit  *string `json:"unit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		var c models.Concentration
		if err := db.WithContext(r.Context()).First(&c, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "concentration not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Value != nil {
			c.Value = *req.Value
		}
		if req.Unit != nil {
			c.Unit = *req.Unit
		}
		if err := db.WithContext(r.Context()).Save(&c).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "concentration updated", c)
	}
}

func DeleteConcentration(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Delete(&models.Concentration{}, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "concentration deleted", nil)
	}
}
