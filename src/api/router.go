package api

import (
	"net/http"
	"time"

	"dimdim-server/src/handlers"
	"dimdim-server/src/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	AllowedOrigins []string
	JWTSecret      string
	DemoMode       bool
	RequestTimeout time.Duration
	Info           handlers.AppInfo
}

func NewRouter(clients handlers.ClientRules, transactions handlers.TransactionRules, db handlers.Pinger, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", handlers.Health(db, opts.Info))
	r.Get("/health/ready", handlers.Ready(db))
	r.Get("/health/live", handlers.Live(opts.Info))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	auth := middleware.JWTAuthMiddleware(opts.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.DemoModeMiddleware(opts.DemoMode))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", handlers.ListClients(clients))
			r.Get("/search", handlers.SearchClients(clients))
			r.Get("/count", handlers.CountClients(clients))
			r.Get("/{client_id}", handlers.GetClient(clients))

			r.With(auth).Group(func(r chi.Router) {
				r.Post("/", handlers.CreateClient(clients))
				r.Put("/{client_id}", handlers.UpdateClient(clients))
				r.Delete("/{client_id}", handlers.DeleteClient(clients))
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", handlers.ListTransactions(transactions))
			r.Get("/count", handlers.CountTransactions(transactions))
			r.Get("/date", handlers.GetTransactionsByDate(transactions))
			r.Get("/range", handlers.GetTransactionsByRange(transactions))
			r.Get("/client/{client_id}", handlers.GetTransactionsByClient(transactions))
			r.Get("/client/{client_id}/range", handlers.GetClientTransactionsByRange(transactions))
			r.Get("/client/{client_id}/total", handlers.GetClientTotal(transactions))
			r.Get("/client/{client_id}/count", handlers.CountClientTransactions(transactions))
			r.Get("/{transaction_id}", handlers.GetTransaction(transactions))

			r.With(auth).Group(func(r chi.Router) {
				r.Post("/", handlers.CreateTransaction(transactions))
				r.Put("/{transaction_id}", handlers.UpdateTransaction(transactions))
				r.Delete("/{transaction_id}", handlers.DeleteTransaction(transactions))
			})
		})
	})

	return r
}
