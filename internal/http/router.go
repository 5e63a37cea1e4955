package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/savr/internal/http/activity"
	"github.com/MrJamesThe3rd/savr/internal/http/analytics"
	"github.com/MrJamesThe3rd/savr/internal/http/debt"
	"github.com/MrJamesThe3rd/savr/internal/http/goal"
	"github.com/MrJamesThe3rd/savr/internal/http/importcsv"
	"github.com/MrJamesThe3rd/savr/internal/http/matching"
	"github.com/MrJamesThe3rd/savr/internal/http/transaction"
	"github.com/MrJamesThe3rd/savr/internal/http/wallet"
)

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
	// Authenticate resolves the caller on every /api/v1 request.
	Authenticate func(http.Handler) http.Handler
}

type Handlers struct {
	Wallets      *wallet.Handler
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Goals        *goal.Handler
	Debts        *debt.Handler
	Activities   *activity.Handler
	Matching     *matching.Handler
	Analytics    *analytics.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Authenticate)

		r.Route("/wallets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Wallets.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.Routes(r)
			})
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Debts.Routes(r)
		})

		r.Route("/activities", h.Activities.Routes)
		r.Route("/matching", h.Matching.Routes)
		r.Route("/analytics", h.Analytics.Routes)
	})

	return router
}
