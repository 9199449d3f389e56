package http //nolint:revive // directory-based package name, imported with alias

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultRequestTimeout = 30 * time.Second

type RouterConfig struct {
	RequestTimeout time.Duration
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.HandleHealth)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.HandleCreateProduct)
			r.Get("/", h.HandleListProducts)
			r.Get("/{id}", h.HandleGetProduct)
			r.Patch("/{id}", h.HandleUpdateProduct)
			r.Post("/{id}/restock", h.HandleRestock)
		})

		r.Route("/drawers", func(r chi.Router) {
			r.Post("/", h.HandleOpenDrawer)
			r.Get("/{id}", h.HandleGetDrawer)
			r.Get("/{id}/movements", h.HandleMovements)
			r.Post("/{id}/cash-in", h.HandleCashIn)
			r.Post("/{id}/cash-out", h.HandleCashOut)
			r.Post("/{id}/close", h.HandleCloseDrawer)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", h.HandleCheckout)
			r.Get("/{id}", h.HandleGetSale)
			r.Post("/{id}/void", h.HandleVoid)
			r.Get("/{id}/receipt.png", h.HandleReceipt)
		})
	})

	return r
}
