package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"farmacore/internal/auth"
	"farmacore/internal/config"
	"farmacore/internal/httpserver/handlers"
	"farmacore/internal/models"
	"farmacore/internal/service"
	"farmacore/internal/store"
)

// Module names the guards reference. They match the seeded registry.
const (
	ModuleUsers    = "Usuarios"
	ModuleRoles    = "Roles"
	ModuleProducts = "Productos"
)

// Deps carries the explicitly constructed components the router wires
// into handlers.
type Deps struct {
	DB     *gorm.DB
	Cfg    config.Config
	Lg     *zap.SugaredLogger
	Stores *store.Stores
	Codec  *auth.Codec
	Auth   *service.AuthService
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))
	r.Use(httprate.Limit(100, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Post("/v1/auth/login", handlers.Login(d.Auth, d.Cfg, d.Lg))
	// logout sits outside the authenticated group: it must answer 400 on a
	// missing token and stay a 200 no-op when the session is already closed
	r.Post("/v1/auth/logout", handlers.Logout(d.Auth, d.Lg))

	guard := func(moduleName string, perms ...string) func(http.Handler) http.Handler {
		return auth.RequirePermission(d.Stores.Users, d.Stores.Modules, d.Lg, moduleName, perms...)
	}

	r.Group(func(protected chi.Router) {
		protected.Use(auth.Authenticate(d.Codec, d.Stores.Sessions, d.Lg))

		protected.Get("/v1/auth/email/{email}", handlers.UserByEmail(d.Auth, d.Lg))
		protected.Get("/v1/auth/{id}", handlers.UserByID(d.Auth, d.Lg))

		protected.Route("/v1/users", func(u chi.Router) {
			u.With(guard(ModuleUsers, models.PermRead)).Get("/", handlers.ListUsers(d.Stores.Users, d.Lg))
			u.With(guard(ModuleUsers, models.PermRead)).Get("/{id}", handlers.GetUser(d.Stores.Users, d.Lg))
			u.With(guard(ModuleUsers, models.PermCreate)).Post("/", handlers.CreateUser(d.Stores.Users, d.Stores.Roles, d.Cfg, d.Lg))
			u.With(guard(ModuleUsers, models.PermUpdate)).Patch("/{id}", handlers.UpdateUser(d.Stores.Users, d.Stores.Roles, d.Cfg, d.Lg))
			u.With(guard(ModuleUsers, models.PermDelete)).Delete("/{id}", handlers.DeleteUser(d.DB, d.Stores.Users, d.Stores.Sessions, d.Lg))
		})

		protected.Route("/v1/roles", func(ro chi.Router) {
			ro.With(guard(ModuleRoles, models.PermRead)).Get("/", handlers.ListRoles(d.Stores.Roles, d.Lg))
			ro.With(guard(ModuleRoles, models.PermRead)).Get("/{id}", handlers.GetRole(d.Stores.Roles, d.Lg))
			ro.With(guard(ModuleRoles, models.PermCreate)).Post("/", handlers.CreateRole(d.Stores.Roles, d.Stores.Modules, d.Lg))
			ro.With(guard(ModuleRoles, models.PermUpdate)).Patch("/{id}", handlers.UpdateRole(d.Stores.Roles, d.Stores.Modules, d.Lg))
			ro.With(guard(ModuleRoles, models.PermDelete)).Delete("/{id}", handlers.DeleteRole(d.Stores.Roles, d.Lg))
		})

		protected.Route("/v1/modules", func(m chi.Router) {
			m.With(guard(ModuleRoles, models.PermRead)).Get("/", handlers.ListModules(d.Stores.Modules, d.Lg))
			m.With(guard(ModuleRoles, models.PermRead)).Get("/{id}", handlers.GetModule(d.Stores.Modules, d.Lg))
			m.With(guard(ModuleRoles, models.PermCreate)).Post("/", handlers.CreateModule(d.Stores.Modules, d.Lg))
			m.With(guard(ModuleRoles, models.PermUpdate)).Patch("/{id}", handlers.UpdateModule(d.Stores.Modules, d.Lg))
			m.With(guard(ModuleRoles, models.PermDelete)).Delete("/{id}", handlers.DeleteModule(d.Stores.Modules, d.Lg))
		})

		catalog := func(cr chi.Router, list, get, create, update, del http.HandlerFunc) {
			cr.With(guard(ModuleProducts, models.PermRead)).Get("/", list)
			cr.With(guard(ModuleProducts, models.PermRead)).Get("/{id}", get)
			cr.With(guard(ModuleProducts, models.PermCreate)).Post("/", create)
			cr.With(guard(ModuleProducts, models.PermUpdate)).Patch("/{id}", update)
			cr.With(guard(ModuleProducts, models.PermDelete)).Delete("/{id}", del)
		}

		protected.Route("/v1/products", func(cr chi.Router) {
			catalog(cr,
				handlers.ListProducts(d.DB, d.Lg), handlers.GetProduct(d.DB, d.Lg),
				handlers.CreateProduct(d.DB, d.Lg), handlers.UpdateProduct(d.DB, d.Lg),
				handlers.DeleteProduct(d.DB, d.Lg))
		})
		protected.Route("/v1/categories", func(cr chi.Router) {
			catalog(cr,
				handlers.ListCategories(d.DB, d.Lg), handlers.GetCategory(d.DB, d.Lg),
				handlers.CreateCategory(d.DB, d.Lg), handlers.UpdateCategory(d.DB, d.Lg),
				handlers.DeleteCategory(d.DB, d.Lg))
		})
		protected.Route("/v1/subcategories", func(cr chi.Router) {
			catalog(cr,
				handlers.ListSubcategories(d.DB, d.Lg), handlers.GetSubcategory(d.DB, d.Lg),
				handlers.CreateSubcategory(d.DB, d.Lg), handlers.UpdateSubcategory(d.DB, d.Lg),
				handlers.DeleteSubcategory(d.DB, d.Lg))
		})
		protected.Route("/v1/concentrations", func(cr chi.Router) {
			catalog(cr,
				handlers.ListConcentrations(d.DB, d.Lg), handlers.GetConcentration(d.DB, d.Lg),
				handlers.CreateConcentration(d.DB, d.Lg), handlers.UpdateConcentration(d.DB, d.Lg),
				handlers.DeleteConcentration(d.DB, d.Lg))
		})
		protected.Route("/v1/pharmaceutical-forms", func(cr chi.Router) {
			catalog(cr,
				handlers.ListPharmaceuticalForms(d.DB, d.Lg), handlers.GetPharmaceuticalForm(d.DB, d.Lg),
				handlers.CreatePharmaceuticalForm(d.DB, d.Lg), handlers.UpdatePharmaceuticalForm(d.DB, d.Lg),
				handlers.DeletePharmaceuticalForm(d.DB, d.Lg))
		})
		protected.Route("/v1/active-ingredients", func(cr chi.Router) {
			catalog(cr,
				handlers.ListActiveIngredients(d.DB, d.Lg), handlers.GetActiveIngredient(d.DB, d.Lg),
				handlers.CreateActiveIngredient(d.DB, d.Lg), handlers.UpdateActiveIngredient(d.DB, d.Lg),
				handlers.DeleteActiveIngredient(d.DB, d.Lg))
		})
	})

	return otelhttp.NewHandler(r, "farmacore-api")
}
