package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kerjahub/hris-backend/internal/config"
	"github.com/kerjahub/hris-backend/internal/domain/auth"
	"github.com/kerjahub/hris-backend/internal/handler/http/middleware"
	"github.com/kerjahub/hris-backend/internal/pkg/token"
)

type RouterDeps struct {
	Config      *config.Config
	Tokens      token.Service
	AuthService auth.AuthService

	Auth       AuthHandler
	Employee   EmployeeHandler
	Department DepartmentHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Settings   SettingsHandler
	Billing    BillingHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kerjahub-hris"),
		slog.String("env", deps.Config.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.RefreshToken)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", deps.Auth.LoginWithGoogle)
				r.Get("/google/callback", deps.Auth.OAuthCallbackGoogle)
			})

			// Logout and password change need a valid token but not a
			// resolved employee, so an invited-but-unlinked identity can
			// still manage its credentials.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(deps.Tokens.JWTAuth()))
				r.Use(middleware.AuthRequired(deps.Tokens))
				r.Post("/logout", deps.Auth.Logout)
				r.Put("/password", deps.Auth.UpdatePassword)
				r.Post("/link-identity", deps.Auth.LinkIdentity)
			})
		})

		r.Post("/invitations/accept", deps.Auth.AcceptInvitation)

		r.Get("/billing/plans", deps.Billing.ListPlans)

		// Tenant-scoped routes. The actor middleware resolves the
		// identity to an active employee and rejects everything else.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.Tokens.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.Tokens))
			r.Use(middleware.ActorResolver(deps.AuthService))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", deps.Employee.List)
				r.Post("/", deps.Employee.Create)
				r.Get("/me", deps.Employee.GetMe)
				r.Put("/me", deps.Employee.UpdateMe)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Employee.Get)
					r.Put("/", deps.Employee.Update)
					r.Delete("/", deps.Employee.Delete)
					r.Post("/invite", deps.Employee.Invite)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", deps.Department.List)
				r.Post("/", deps.Department.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Department.Get)
					r.Put("/", deps.Department.Update)
					r.Delete("/", deps.Department.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", deps.Attendance.CheckIn)
				r.Post("/check-out", deps.Attendance.CheckOut)
				r.Get("/", deps.Attendance.List)
				r.Get("/me", deps.Attendance.ListMine)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", deps.Leave.Submit)
				r.Get("/", deps.Leave.List)
				r.Get("/me", deps.Leave.ListMine)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/approve", deps.Leave.Approve)
					r.Post("/reject", deps.Leave.Reject)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", deps.Settings.Get)
				r.Put("/", deps.Settings.Update)
			})

			r.Get("/billing/usage", deps.Billing.GetUsage)
			r.Post("/billing/usage", deps.Billing.RecordUsage)
		})
	})

	return r
}
