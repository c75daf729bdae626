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

func productScope(db *gorm.DB) *gorm.DB {
	return db.
		Preload("ActiveIngredient").
		Preload("Concentration").
		Preload("PharmaceuticalForm").
		Preload("Subcategory.Category")
}

func ListProducts(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var products []models.Product
		if err := productScope(db.WithContext(r.Context())).Order("created_at desc").Find(&products).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "products listed", products)
	}
}

func GetProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		if err := productScope(db.WithContext(r.Context())).First(&p, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "product not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "product found", p)
	}
}

type productReq struct {
	TradeName            string `json:"trade_name"`
	GenericName          string `json:"generic_name"`
	ActiveIngredientID   string `json:"active_ingredient_id"`
	ConcentrationID      string `json:"concentration_id"`
	PharmaceuticalFormID string `json:"pharmaceutical_form_id"`
	SubcategoryID        string `json:"subcategory_id"`
	Barcode              string `json:"barcode"`
	MinimumStock         int    `json:"minimum_stock"`
}

func (req *productReq) validate() string {
	switch {
	case strings.TrimSpace(req.TradeName) == "":
		return "trade_name is required"
	case strings.TrimSpace(req.GenericName) == "":
		return "generic_name is required"
	case req.ActiveIngredientID == "":
		return "active_ingredient_id is required"
	case req.ConcentrationID == "":
		return "concentration_id is required"
	case req.PharmaceuticalFormID == "":
		return "pharmaceutical_form_id is required"
	case req.SubcategoryID == "":
		return "subcategory_id is required"
	}
	return ""
}

func CreateProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if msg := req.validate(); msg != "" {
			respond.Fail(w, http.StatusBadRequest, msg, nil)
			return
		}
		p := models.Product{
			TradeName:            req.TradeName,
			GenericName:          req.GenericName,
			ActiveIngredientID:   req.ActiveIngredientID,
			ConcentrationID:      req.ConcentrationID,
			PharmaceuticalFormID: req.PharmaceuticalFormID,
			SubcategoryID:        req.SubcategoryID,
			Barcode:              req.Barcode,
			MinimumStock:         req.MinimumStock,
		}
		if err := db.WithContext(r.Context()).Create(&p).Error; err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create product", err.Error())
			return
		}
		respond.OK(w, "product created", p)
	}
}

func UpdateProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TradeName            *string `json:"trade_name"`
			GenericName          *string `json:"generic_name"`
			ActiveIngredientID   *string `json:"active_ingredient_id"`
			ConcentrationID      *string `json:"concentration_id"`
			PharmaceuticalFormID *string `json:"pharmaceutical_form_id"`
			SubcategoryID        *string `json:"subcategory_id"`
			Barcode              *string `json:"barcode"`
			MinimumStock         *int    `json:"minimum_stock"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		var p models.Product
		if err := db.WithContext(r.Context()).First(&p, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "product not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.TradeName != nil {
			p.TradeName = *req.TradeName
		}
		if req.GenericName != nil {
			p.GenericName = *req.GenericName
		}
		if req.ActiveIngredientID != nil {
			p.ActiveIngredientID = *req.ActiveIngredientID
		}
		if req.ConcentrationID != nil {
			p.ConcentrationID = *req.ConcentrationID
		}
		if req.PharmaceuticalFormID != nil {
			p.PharmaceuticalFormID = *req.PharmaceuticalFormID
		}
		if req.SubcategoryID != nil {
			p.SubcategoryID = *req.SubcategoryID
		}
		if req.Barcode != nil {
			p.Barcode = *req.Barcode
		}
		if req.MinimumStock != nil {
			p.MinimumStock = *req.MinimumStock
		}
		if err := db.WithContext(r.Context()).Save(&p).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "product updated", p)
	}
}

func DeleteProduct(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Delete(&models.Product{}, "id = ?", chi.URLParam(r, "id")).Error; err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "product deleted", nil)
	}
}
