package httpserver

import (
	"net/http"
	"time"

	"dealer-app-go/internal/config"
	"dealer-app-go/internal/transport/httpserver/handler"
	"dealer-app-go/internal/transport/httpserver/middleware"
	"dealer-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth middleware.Authenticator, metrics *middleware.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSOrigins))
	if metrics != nil {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/auth/login", handlers.Common.Login)

		bearer := middleware.NewBearerAuth(auth)
		r.Group(func(r chi.Router) {
			r.Use(bearer.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/deposits", handlers.Deposits.ListDeposits)
			r.Post("/deposits", handlers.Deposits.CreateDeposit)
			r.Get("/deposits/{id}", handlers.Deposits.GetDeposit)
			r.Patch("/deposits/{id}", handlers.Deposits.UpdateDeposit)
			r.Delete("/deposits/{id}", handlers.Deposits.DeleteDeposit)

			r.Get("/notes/{kind}/{owner_id}", handlers.Annotations.ListNotes)
			r.Post("/notes/{kind}/{owner_id}", handlers.Annotations.CreateNote)
			r.Patch("/notes/{kind}/{owner_id}/{note_id}", handlers.Annotations.UpdateNote)
			r.Delete("/notes/{kind}/{owner_id}/{note_id}", handlers.Annotations.DeleteNote)

			r.Get("/reminders/{kind}/{owner_id}", handlers.Annotations.ListReminders)
			r.Post("/reminders/{kind}/{owner_id}", handlers.Annotations.CreateReminder)
			r.Patch("/reminders/{kind}/{owner_id}/{reminder_id}", handlers.Annotations.UpdateReminder)
			r.Delete("/reminders/{kind}/{owner_id}/{reminder_id}", handlers.Annotations.DeleteReminder)

			r.Get("/dashboard/reminders", handlers.Annotations.ListPendingReminders)
			r.Post("/dashboard/reminders/{kind}/{reminder_id}/complete", handlers.Annotations.CompleteReminder)
		})
	})

	return r
}
