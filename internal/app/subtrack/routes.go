// Package subtrack собирает приложение трекера подписочных расходов:
// зависимости, маршруты и HTTP-сервер.
package subtrack

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	adminbackup "github.com/subtrack-app/subtrack/internal/http/handlers/admin/backup"
	adminrestore "github.com/subtrack-app/subtrack/internal/http/handlers/admin/restore"
	adminusers "github.com/subtrack-app/subtrack/internal/http/handlers/admin/users"
	"github.com/subtrack-app/subtrack/internal/http/handlers/auth/login"
	"github.com/subtrack-app/subtrack/internal/http/handlers/auth/logout"
	"github.com/subtrack-app/subtrack/internal/http/handlers/auth/me"
	"github.com/subtrack-app/subtrack/internal/http/handlers/auth/register"
	"github.com/subtrack-app/subtrack/internal/http/handlers/rate"
	"github.com/subtrack-app/subtrack/internal/http/handlers/subscription/create"
	"github.com/subtrack-app/subtrack/internal/http/handlers/subscription/list"
	"github.com/subtrack-app/subtrack/internal/http/handlers/subscription/remove"
	"github.com/subtrack-app/subtrack/internal/http/handlers/subscription/update"
	"github.com/subtrack-app/subtrack/internal/http/middlewarectx"
	"github.com/subtrack-app/subtrack/internal/session"
	authservice "github.com/subtrack-app/subtrack/internal/services/auth"
	backupservice "github.com/subtrack-app/subtrack/internal/services/backup"
	rateservice "github.com/subtrack-app/subtrack/internal/services/rate"
	subservice "github.com/subtrack-app/subtrack/internal/services/subscription"
	"github.com/subtrack-app/subtrack/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Маршруты /api/admin/* намеренно не закрыты аутентификацией: поведение
// исходной системы сохранено, см. DESIGN.md.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	storage *repository.Storage,
	sessions *session.Store,
	authService *authservice.AuthService,
	subscriptionService *subservice.SubscriptionService,
	rateService *rateservice.RateService,
	backupService *backupservice.BackupService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(_ *http.Request, _ string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService, sessions).ServeHTTP)
		r.Get("/login", login.Redirect)
		r.Post("/login", login.New(logger, authService, sessions).ServeHTTP)
		r.Get("/exchange-rate", rate.New(logger, rateService, sessions).ServeHTTP)

		// Административные конечные точки (без аутентификации)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", adminusers.New(logger, storage).ServeHTTP)
			r.Get("/backup", adminbackup.New(logger, backupService).ServeHTTP)
			r.Post("/restore", adminrestore.New(logger, backupService).ServeHTTP)
		})

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessions, authService, logger))
			r.Post("/logout", logout.New(logger, sessions).ServeHTTP)
			r.Get("/user", me.New(logger).ServeHTTP)
			r.Get("/subscriptions", list.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
