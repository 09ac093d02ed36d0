package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/auth"
	"github.com/clinicdesk/clinicdesk/internal/patient"
)

type RouterConfig struct {
	Auth         *auth.Service
	Patients     *patient.Service
	Appointments *appointment.Service

	// Health probe targets; nil in demo mode.
	PgPool *pgxpool.Pool
	Redis  *redis.Client

	DemoMode bool
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.DemoMode, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Login is the only open application endpoint
	r.Post("/auth/login", loginHandler(cfg.Auth))

	// Everything else needs a live session
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Auth))

		r.Post("/auth/logout", logoutHandler(cfg.Auth))
		r.Get("/auth/session", sessionHandler())

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", listPatientsHandler(cfg.Patients))
			r.Post("/", createPatientHandler(cfg.Patients))
			r.Get("/{id}", getPatientHandler(cfg.Patients))
			r.Put("/{id}", updatePatientHandler(cfg.Patients))
			r.Delete("/{id}", deletePatientHandler(cfg.Patients))
			r.Get("/{id}/appointments", listPatientAppointmentsHandler(cfg.Appointments))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", listAppointmentsHandler(cfg.Appointments))
			r.Post("/", createAppointmentHandler(cfg.Appointments))
			r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
			r.Put("/{id}", updateAppointmentHandler(cfg.Appointments))
			r.Delete("/{id}", deleteAppointmentHandler(cfg.Appointments))
			r.Put("/{id}/status", updateAppointmentStatusHandler(cfg.Appointments))
		})

		r.Get("/calendar", calendarHandler(cfg.Appointments))
		r.Get("/calendar/summary", calendarSummaryHandler(cfg.Appointments))

		r.Get("/exports/appointments.csv", exportCSVHandler(cfg.Appointments))
		r.Get("/exports/calendar.pdf", exportPDFHandler(cfg.Appointments))
	})

	return r
}
