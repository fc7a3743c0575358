package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/allowance-management/internal/allowance"
	"github.com/frahmantamala/allowance-management/internal/audit"
	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/branch"
	"github.com/frahmantamala/allowance-management/internal/group"
	"github.com/frahmantamala/allowance-management/internal/menu"
	"github.com/frahmantamala/allowance-management/internal/order"
	"github.com/frahmantamala/allowance-management/internal/report"
	"github.com/frahmantamala/allowance-management/internal/transport/middleware"
	"github.com/frahmantamala/allowance-management/internal/transport/swagger"
	"github.com/frahmantamala/allowance-management/internal/user"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps carries everything the route table needs.
type Deps struct {
	DB            *sql.DB
	Redis         *redis.Client
	Auth          *auth.Handler
	Guard         *auth.RoleGuard
	LoginLimiter  *middleware.LoginRateLimiter
	Users         *user.Handler
	Branches      *branch.Handler
	Groups        *group.Handler
	Menus         *menu.Handler
	Orders        *order.Handler
	Allowances    *allowance.Handler
	Reports       *report.Handler
	Audit         *audit.Handler
	CORSOrigins   string
	EnableMetrics bool
	Logger        *slog.Logger
}

// RegisterAllRoutes builds the whole route table. Role gating is done
// here, in one place, with a single guard.
func RegisterAllRoutes(router *chi.Mux, deps Deps) {
	healthHandler := NewHealthHandler(deps.DB, deps.Redis)

	router.Use(middleware.CORS(deps.CORSOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	if deps.EnableMetrics {
		router.Use(middleware.Metrics)
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			if deps.LoginLimiter != nil {
				sr.With(deps.LoginLimiter.Middleware).Post("/login", deps.Auth.Login)
			} else {
				sr.Post("/login", deps.Auth.Login)
			}
			sr.Post("/refresh", deps.Auth.RefreshToken)
			sr.Post("/logout", deps.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(deps.Auth.AuthMiddleware)

			pr.Get("/auth/session", deps.Auth.Session)
			pr.Get("/users/me", deps.Users.GetCurrentUser)

			// reference data is readable by any signed-in user
			pr.Get("/branches", deps.Branches.ListBranches)
			pr.Get("/branches/{id}", deps.Branches.GetBranch)
			pr.Get("/menus", deps.Menus.ListMenus)
			pr.Get("/menus/{id}", deps.Menus.GetMenu)
			pr.Get("/menu-items", deps.Menus.ListItems)
			pr.Get("/menu-items/{id}", deps.Menus.GetItem)

			pr.Post("/orders", deps.Orders.CreateOrder)
			pr.Get("/orders/{id}", deps.Orders.GetOrder)

			// resource administration
			pr.Group(func(ar chi.Router) {
				ar.Use(deps.Guard.RequireAdmin())

				ar.Post("/branches", deps.Branches.CreateBranch)
				ar.Put("/branches/{id}", deps.Branches.UpdateBranch)
				ar.Delete("/branches/{id}", deps.Branches.DeleteBranch)

				ar.Post("/menus", deps.Menus.CreateMenu)
				ar.Put("/menus/{id}", deps.Menus.UpdateMenu)
				ar.Delete("/menus/{id}", deps.Menus.DeleteMenu)
				ar.Post("/menu-items", deps.Menus.CreateItem)
				ar.Put("/menu-items/{id}", deps.Menus.UpdateItem)
				ar.Delete("/menu-items/{id}", deps.Menus.DeleteItem)

				ar.Post("/allowance-groups", deps.Groups.CreateGroup)
				ar.Put("/allowance-groups/{id}", deps.Groups.UpdateGroup)
				ar.Delete("/allowance-groups/{id}", deps.Groups.DeleteGroup)
				ar.Post("/allowance-groups/assign", deps.Groups.AssignGroup)

				ar.Get("/users", deps.Users.ListUsers)
				ar.Get("/users/{id}", deps.Users.GetUser)
				ar.Post("/users", deps.Users.CreateUser)
				ar.Put("/users/{id}", deps.Users.UpdateUser)
				ar.Delete("/users/{id}", deps.Users.DeleteUser)

				ar.Post("/allowances/issue", deps.Allowances.IssueMonthly)
				ar.Post("/allowances/{id}/adjust", deps.Allowances.AdjustBalance)
			})

			// back-office views shared by admin and finance
			pr.Group(func(fr chi.Router) {
				fr.Use(deps.Guard.Require(auth.RoleAdmin, auth.RoleFinance))

				fr.Get("/allowance-groups", deps.Groups.ListGroups)
				fr.Get("/allowance-groups/{id}", deps.Groups.GetGroup)
				fr.Get("/users/employees", deps.Users.ListEmployees)
				fr.Get("/orders", deps.Orders.ListOrders)
				fr.Get("/allowances", deps.Allowances.ListAllowances)
				fr.Get("/allowances/{id}", deps.Allowances.GetAllowance)

				fr.Get("/reports/summary", deps.Reports.GetSummary)
				fr.Get("/reports/over-usage", deps.Reports.GetOverUsage)
				fr.Get("/reports/over-usage-by-group", deps.Reports.GetOverUsageByGroup)
				fr.Get("/reports/usage-trend", deps.Reports.GetUsageTrend)
				fr.Get("/reports/over-usage/export", deps.Reports.ExportOverUsageCSV)

				fr.Get("/audit", deps.Audit.ListEntries)
			})
		})
	})
}
