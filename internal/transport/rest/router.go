package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/internal/audit"
	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/department"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/leavetype"
	"github.com/frahmantamala/leave-management/internal/report"
	"github.com/frahmantamala/leave-management/internal/transport/middleware"
	"github.com/frahmantamala/leave-management/internal/transport/swagger"
	"github.com/frahmantamala/leave-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Leave      *leave.Handler
	LeaveType  *leavetype.Handler
	Department *department.Handler
	Report     *report.Handler
	Audit      *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.ClientInfo)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/reset-password", h.Auth.ResetPassword)

			sr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.SessionMiddleware)
				ar.Post("/logout", h.Auth.Logout)
				ar.Get("/me", h.Auth.Me)
				ar.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Everything below requires a valid session.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.SessionMiddleware)

			pr.Get("/dashboard", h.Leave.Dashboard)
			pr.Get("/leave-types", h.LeaveType.ListActive)
			pr.Get("/departments", h.Department.List)

			pr.Route("/leave-requests", func(lr chi.Router) {
				lr.Post("/", h.Leave.SubmitRequest)
				lr.Get("/", h.Leave.MyRequests)
				lr.Get("/{id}", h.Leave.GetRequest)
			})

			pr.Route("/profile", func(ur chi.Router) {
				ur.Get("/", h.User.Profile)
				ur.Patch("/", h.User.UpdateProfile)
			})

			// Admin surface. Managers may read the request review
			// listing; everything else stays admin-only.
			pr.Route("/admin", func(ar chi.Router) {
				ar.Group(func(g chi.Router) {
					g.Use(h.Auth.RequireAdmin)

					g.Get("/dashboard", h.Report.Dashboard)
					g.Get("/reports/usage", h.Report.Usage)
					g.Get("/audit-logs", h.Audit.List)

					g.Route("/employees", func(er chi.Router) {
						er.Post("/", h.User.CreateEmployee)
						er.Get("/", h.User.ListEmployees)
						er.Get("/{id}", h.User.GetEmployee)
						er.Patch("/{id}", h.User.UpdateEmployee)
						er.Delete("/{id}", h.User.DeactivateEmployee)
						er.Post("/{id}/reset-token", h.Auth.IssueResetToken)
					})

					g.Route("/leave-types", func(lt chi.Router) {
						lt.Post("/", h.LeaveType.Create)
						lt.Get("/", h.LeaveType.ListAll)
						lt.Get("/{id}", h.LeaveType.Get)
						lt.Patch("/{id}", h.LeaveType.Update)
						lt.Delete("/{id}", h.LeaveType.Deactivate)
					})
				})

				ar.Route("/leave-requests", func(lr chi.Router) {
					lr.Use(h.Auth.RequireManager)
					lr.Get("/", h.Leave.ListAllRequests)
					lr.With(h.Auth.RequireAdmin).Patch("/{id}/approve", h.Leave.ApproveRequest)
					lr.With(h.Auth.RequireAdmin).Patch("/{id}/reject", h.Leave.RejectRequest)
				})
			})
		})
	})
}
