// Package schoolplatform предоставляет маршруты HTTP-сервиса.
package schoolplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	announcementcreate "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/announcement/create"
	announcementlist "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/announcement/list"
	announcementremove "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/announcement/remove"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/auth/register"
	classcreate "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/class/create"
	classlist "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/class/list"
	feecreate "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/fee/create"
	feelist "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/fee/list"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/health"
	latefeeprocess "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/latefee/process"
	policycreate "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/latefeepolicy/create"
	policylist "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/latefeepolicy/list"
	sessioncreate "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/session/create"
	sessionlist "github.com/magabrotheeeer/school-fees-platform/internal/http/handlers/session/list"
	"github.com/magabrotheeeer/school-fees-platform/internal/http/middlewarectx"
	announcementservice "github.com/magabrotheeeer/school-fees-platform/internal/services/announcement"
	authservice "github.com/magabrotheeeer/school-fees-platform/internal/services/auth"
	feeservice "github.com/magabrotheeeer/school-fees-platform/internal/services/fee"
	latefeeservice "github.com/magabrotheeeer/school-fees-platform/internal/services/latefee"
	schoolservice "github.com/magabrotheeeer/school-fees-platform/internal/services/school"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	announcementService *announcementservice.AnnouncementService,
	schoolService *schoolservice.SchoolService,
	feeService *feeservice.FeeService,
	lateFeeService *latefeeservice.LateFeeService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/announcements", announcementcreate.New(logger, announcementService).ServeHTTP)
			r.Get("/announcements", announcementlist.New(logger, announcementService).ServeHTTP)
			r.Delete("/announcements/{id}", announcementremove.New(logger, announcementService).ServeHTTP)

			r.Post("/classes", classcreate.New(logger, schoolService).ServeHTTP)
			r.Get("/classes", classlist.New(logger, schoolService).ServeHTTP)
			r.Post("/sessions", sessioncreate.New(logger, schoolService).ServeHTTP)
			r.Get("/sessions", sessionlist.New(logger, schoolService).ServeHTTP)

			r.Post("/fees", feecreate.New(logger, feeService).ServeHTTP)
			r.Get("/fees/student/{student_uid}", feelist.New(logger, feeService).ServeHTTP)

			r.Post("/late-fee-policies", policycreate.New(logger, feeService).ServeHTTP)
			r.Get("/late-fee-policies", policylist.New(logger, feeService).ServeHTTP)

			r.Post("/fees/process-late-fees", latefeeprocess.New(logger, lateFeeService).ServeHTTP)
			r.Get("/fees/process-late-fees", latefeeprocess.New(logger, lateFeeService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
