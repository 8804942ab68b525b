package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(mw.BearerAuth)
				r.Get("/profile", h.Profile)
				r.Put("/profile", h.UpdateProfile)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Get("/", h.Clients)
			r.Post("/", h.CreateClient)
			r.Get("/{id}", h.Client)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Get("/", h.Invoices)
			r.Post("/", h.CreateInvoice)
			r.Get("/stats/dashboard", h.DashboardStats)
			r.Get("/{id}", h.Invoice)
			r.Put("/{id}", h.UpdateInvoice)
			r.Delete("/{id}", h.DeleteInvoice)
			r.Patch("/{id}/status", h.UpdateInvoiceStatus)
			r.Patch("/{id}/mark-paid", h.MarkInvoicePaid)
			r.Get("/{id}/download", h.DownloadInvoice)
			r.Post("/{id}/send-email", h.SendInvoice)
		})
	})

	return mux
}
