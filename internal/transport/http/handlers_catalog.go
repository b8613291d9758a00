package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veridev/internal/catalog"
	"veridev/internal/platform/middleware"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
	"veridev/pkg/platform/httputil"
)

//go:generate mockgen -source=handlers_catalog.go -destination=mocks/catalog_service_mock.go -package=mocks

// CatalogService defines the product catalog operations.
type CatalogService interface {
	Create(ctx context.Context, caller domain.Identity, deviceType string, price uint64, asset domain.AssetRef) (*catalog.Product, error)
	Product(ctx context.Context, id domain.ProductID) (*catalog.Product, error)
	Products(ctx context.Context) ([]*catalog.Product, error)
}

// CatalogHandler handles product catalog endpoints.
type CatalogHandler struct {
	service CatalogService
	logger  *slog.Logger
}

type createProductRequest struct {
	DeviceType string `json:"device_type"`
	Price      uint64 `json:"price"`
	Asset      string `json:"asset"`
}

func (h *CatalogHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetCaller(ctx)

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	product, err := h.service.Create(ctx, caller, req.DeviceType, req.Price, domain.AssetRef(req.Asset))
	if err != nil {
		h.logger.WarnContext(ctx, "product listing rejected",
			"caller", caller,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseProductID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid product id"))
		return
	}

	product, err := h.service.Product(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}
