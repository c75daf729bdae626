package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/models"
	"farmacore/internal/respond"
	"farmacore/internal/store"
)

type roleGrantReq struct {
	ModuleID    string   `json:"module_id"`
	Permissions []string `json:"permissions"`
}

// parseGrants validates each grant against the module registry; a grant on
// an unregistered module id would never match any guard.
func parseGrants(ctx context.Context, modules *store.ModuleStore, reqs []roleGrantReq) ([]models.RoleModule, error) {
	grants := make([]models.RoleModule, 0, len(reqs))
	for _, g := range reqs {
		if g.ModuleID == "" {
			return nil, fmt.Errorf("module_id is required in every grant")
		}
		if _, err := modules.ByID(ctx, g.ModuleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("unknown module id %q", g.ModuleID)
			}
			return nil, err
		}
		for _, p := range g.Permissions {
			if !models.ValidPermission(p) {
				return nil, fmt.Errorf("invalid permission %q", p)
			}
		}
		perms := g.Permissions
		if len(perms) == 0 {
			perms = []string{models.PermRead}
		}
		grants = append(grants, models.RoleModule{ModuleID: g.ModuleID, Permissions: perms})
	}
	return grants, nil
}

func ListRoles(roles *store.RoleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := roles.List(r.Context())
		if err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "roles listed", list)
	}
}

func GetRole(roles *store.RoleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := roles.ByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "role not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "role found", role)
	}
}

func CreateRole(roles *store.RoleStore, modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			Modules     []roleGrantReq `json:"modules"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			respond.Fail(w, http.StatusBadRequest, "name is required", nil)
			return
		}
		grants, err := parseGrants(r.Context(), modules, req.Modules)
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		role := models.Role{Name: req.Name, Description: req.Description, Modules: grants}
		if err := roles.Create(r.Context(), &role); err != nil {
			respond.Fail(w, http.StatusBadRequest, "could not create role", err.Error())
			return
		}
		respond.OK(w, "role created", role)
	}
}

func UpdateRole(roles *store.RoleStore, modules *store.ModuleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string        `json:"name"`
			Description *string        `json:"description"`
			Modules     []roleGrantReq `json:"modules"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		role, err := roles.ByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Fail(w, http.StatusNotFound, "role not found", nil)
				return
			}
			respond.Err(w, lg, err)
			return
		}
		if req.Name != nil {
			role.Name = *req.Name
		}
		if req.Description != nil {
			role.Description = *req.Description
		}
		if req.Modules != nil {
			grants, err := parseGrants(r.Context(), modules, req.Modules)
			if err != nil {
				respond.Fail(w, http.StatusBadRequest, err.Error(), nil)
				return
			}
			if err := roles.ReplaceGrants(r.Context(), role.ID, grants); err != nil {
				respond.Err(w, lg, err)
				return
			}
		}
		// grants are persisted separately; keep Save to the role row itself
		role.Modules = nil
		if err := roles.Save(r.Context(), role); err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "role updated", role)
	}
}

func DeleteRole(roles *store.RoleStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := roles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respond.Err(w, lg, err)
			return
		}
		respond.OK(w, "role deleted", nil)
	}
}
