package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veridev/internal/platform/middleware"
	"veridev/internal/seller"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
	"veridev/pkg/platform/httputil"
)

//go:generate mockgen -source=handlers_seller.go -destination=mocks/seller_service_mock.go -package=mocks

// SellerService defines the account registry operations.
type SellerService interface {
	Register(ctx context.Context, caller domain.Identity, name, location string) (*seller.Account, error)
	Update(ctx context.Context, caller domain.Identity, location, name string) (*seller.Account, error)
	Account(ctx context.Context, identity domain.Identity) (*seller.Account, error)
}

// SellerHandler handles account registry endpoints.
type SellerHandler struct {
	service SellerService
	logger  *slog.Logger
}

type registerSellerRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type updateSellerRequest struct {
	Location string `json:"location"`
	Name     string `json:"name"`
}

func (h *SellerHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetCaller(ctx)

	var req registerSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	account, err := h.service.Register(ctx, caller, req.Name, req.Location)
	if err != nil {
		h.logger.WarnContext(ctx, "seller registration rejected",
			"caller", caller,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, account)
}

func (h *SellerHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetCaller(ctx)

	var req updateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	account, err := h.service.Update(ctx, caller, req.Location, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "seller update rejected",
			"caller", caller,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}

func (h *SellerHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := domain.Identity(chi.URLParam(r, "identity"))

	account, err := h.service.Account(ctx, identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, account)
}
