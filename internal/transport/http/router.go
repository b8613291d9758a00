// Package httptransport is the thin HTTP layer over the registry engine. It
// resolves the caller identity from the bearer token and passes it to the
// services as an explicit parameter; no business logic lives here.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"veridev/internal/platform/metrics"
	"veridev/internal/platform/middleware"
	"veridev/pkg/platform/httputil"
)

// Services bundles the engine services the transport exposes.
type Services struct {
	Sellers SellerService
	Catalog CatalogService
	Escrow  EscrowService
}

// NewRouter wires all endpoints. Mutating routes require a valid bearer
// token; read routes are public, matching the open read surface of the
// ledger.
func NewRouter(services Services, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) http.Handler {
	sellers := &SellerHandler{service: services.Sellers, logger: logger}
	catalog := &CatalogHandler{service: services.Catalog, logger: logger}
	escrow := &EscrowHandler{service: services.Escrow, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public reads.
	r.Group(func(r chi.Router) {
		r.Get("/sellers/{identity}", sellers.handleGet)
		r.Get("/products", catalog.handleList)
		r.Get("/products/{id}", catalog.handleGet)
		r.Get("/certificates/{id}", escrow.handleGet)
		r.Get("/buyers/{identity}/certificates", escrow.handleListByBuyer)
		r.Get("/sellers/{identity}/certificates", escrow.handleListBySeller)
	})

	// Authenticated mutations.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(jwtValidator, logger))
		r.Post("/sellers", sellers.handleRegister)
		r.Put("/sellers", sellers.handleUpdate)
		r.Post("/products", catalog.handleCreate)
		r.Post("/certificates", escrow.handlePurchase)
		r.Post("/certificates/{id}/complete", escrow.handleComplete)
		r.Post("/certificates/{id}/refund", escrow.handleRefund)
	})

	return r
}
