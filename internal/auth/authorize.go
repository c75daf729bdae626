package auth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/metrics"
	"farmacore/internal/models"
	"farmacore/internal/respond"
)

// UserDirectory resolves a user with their role grants fully expanded.
type UserDirectory interface {
	ByIDWithGrants(ctx context.Context, id string) (*models.User, error)
}

// ModuleDirectory resolves a protected module by name.
type ModuleDirectory interface {
	ByName(ctx context.Context, name string) (*models.Module, error)
}

// RequirePermission gates a route on (module, permissions). The request is
// allowed iff some single role of the user grants, on that module, every
// required permission; grants are never unioned across roles or entries.
func RequirePermission(users UserDirectory, modules ModuleDirectory, lg *zap.SugaredLogger, moduleName string, perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := FromContext(r.Context())
			if claims.Subject == "" {
				respond.Fail(w, http.StatusUnauthorized, "not authenticated", nil)
				return
			}

			mod, err := modules.ByName(r.Context(), moduleName)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// misconfigured guard, not a client mistake
					lg.Warnw("guard references unregistered module", "module", moduleName)
					respond.Fail(w, http.StatusNotFound, "module not found", nil)
					return
				}
				respond.Err(w, lg, err)
				return
			}

			user, err := users.ByIDWithGrants(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// token verified but the account is gone: stale credential
					respond.Fail(w, http.StatusNotFound, "user not found", nil)
					return
				}
				respond.Err(w, lg, err)
				return
			}

			allowed := false
			for _, role := range user.Roles {
				for _, grant := range role.Modules {
					if grant.ModuleID == mod.ID && grant.Permissions.ContainsAll(perms) {
						allowed = true
					}
				}
			}
			if !allowed {
				metrics.AuthzDenials.WithLabelValues(moduleName).Inc()
				respond.Fail(w, http.StatusForbidden, "insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
