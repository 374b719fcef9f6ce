package http

import (
	"log/slog"
	"os"

	"github.com/confidence-group/hr-analytics-go/internal/handler/http/middleware"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	roleHandler RoleHandler,
	fileHandler FileHandler,
	employeeHandler EmployeeHandler,
	analyticsHandler AnalyticsHandler,
	settingsHandler SettingsHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-analytics"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Route("/callback", func(r chi.Router) {
					r.Get("/google", authHandler.OAuthCallbackGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Get("/me/scope", userHandler.MyScope)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Post("/sync-roles-from-hierarchy", userHandler.SyncRoles)
					r.Get("/{id}", userHandler.Get)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", roleHandler.List)
				r.Post("/", roleHandler.Create)
				r.Get("/{id}", roleHandler.Get)
				r.Put("/{id}", roleHandler.Update)
				r.Delete("/{id}", roleHandler.Delete)
			})

			r.Route("/files/{kind}", func(r chi.Router) {
				r.Get("/", fileHandler.List)
				r.Get("/{id}", fileHandler.Detail)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/upload", fileHandler.Upload)
					r.Post("/bulk-delete", fileHandler.BulkDelete)
				})
			})

			r.Route("/employee", func(r chi.Router) {
				r.Get("/hierarchy", employeeHandler.Hierarchy)
				r.Get("/row-by-email", employeeHandler.ByEmail)
				r.Get("/scope-options/my", employeeHandler.MyScopeOptions)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/scope-options", employeeHandler.ScopeOptions)
				})
			})

			r.Route("/work_hour", func(r chi.Router) {
				r.Get("/weekly/{group_by}", analyticsHandler.Weekly)
				r.Get("/od/{group_by}", analyticsHandler.OD)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/user-activity", analyticsHandler.TeamsUserActivity)
			})

			r.Route("/config", func(r chi.Router) {
				r.Get("/ctc", settingsHandler.GetCTC)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/ctc", settingsHandler.SetCTC)
				})
			})

			r.Route("/cxo", func(r chi.Router) {
				r.Get("/", settingsHandler.ListCXO)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", settingsHandler.AddCXO)
					r.Delete("/{id}", settingsHandler.RemoveCXO)
				})
			})

			r.Route("/teams-license", func(r chi.Router) {
				r.Get("/", settingsHandler.GetLicense)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", settingsHandler.UpdateLicense)
				})
			})
		})
	})
	return r
}
