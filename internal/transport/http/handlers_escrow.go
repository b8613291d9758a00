package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"veridev/internal/escrow"
	"veridev/internal/platform/middleware"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
	"veridev/pkg/platform/httputil"
)

//go:generate mockgen -source=handlers_escrow.go -destination=mocks/escrow_service_mock.go -package=mocks

// EscrowService defines the escrow ledger operations.
type EscrowService interface {
	Purchase(ctx context.Context, buyer domain.Identity, productID domain.ProductID, claim escrow.DeviceClaim) (*escrow.Certificate, error)
	Complete(ctx context.Context, caller domain.Identity, id domain.CertificateID, report escrow.VerificationReport) (*escrow.Certificate, error)
	Refund(ctx context.Context, caller domain.Identity, id domain.CertificateID) (*escrow.Certificate, error)
	Certificate(ctx context.Context, id domain.CertificateID) (*escrow.Certificate, error)
	CertificatesByBuyer(ctx context.Context, buyer domain.Identity) ([]domain.CertificateID, error)
	CertificatesBySeller(ctx context.Context, seller domain.Identity) ([]domain.CertificateID, error)
}

// EscrowHandler handles certificate lifecycle endpoints.
type EscrowHandler struct {
	service EscrowService
	logger  *slog.Logger
}

type purchaseRequest struct {
	ProductID         string `json:"product_id"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	Variant           string `json:"variant"`
	SerialFingerprint string `json:"serial_fingerprint"`
}

type completeRequest struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Variant   string `json:"variant"`
	Condition string `json:"condition"`
	Remarks   string `json:"remarks"`
}

// certificateResponse is the wire form of a certificate. The serial
// fingerprint travels hex-encoded; finalized_at is omitted while pending.
type certificateResponse struct {
	ID                domain.CertificateID `json:"id"`
	ProductID         domain.ProductID     `json:"product_id"`
	Buyer             domain.Identity      `json:"buyer"`
	Seller            domain.Identity      `json:"seller"`
	Brand             string               `json:"brand"`
	Model             string               `json:"model"`
	Variant           string               `json:"variant"`
	SerialFingerprint string               `json:"serial_fingerprint"`
	VerifiedBrand     string               `json:"verified_brand,omitempty"`
	VerifiedModel     string               `json:"verified_model,omitempty"`
	VerifiedVariant   string               `json:"verified_variant,omitempty"`
	Condition         string               `json:"condition,omitempty"`
	Remarks           string               `json:"remarks,omitempty"`
	Status            escrow.Status        `json:"status"`
	PurchasedAt       time.Time            `json:"purchased_at"`
	FinalizedAt       *time.Time           `json:"finalized_at,omitempty"`
}

func toCertificateResponse(c *escrow.Certificate) certificateResponse {
	resp := certificateResponse{
		ID:                c.ID,
		ProductID:         c.ProductID,
		Buyer:             c.Buyer,
		Seller:            c.Seller,
		Brand:             c.Claim.Brand,
		Model:             c.Claim.Model,
		Variant:           c.Claim.Variant,
		SerialFingerprint: c.Claim.SerialFingerprint.String(),
		VerifiedBrand:     c.Report.Brand,
		VerifiedModel:     c.Report.Model,
		VerifiedVariant:   c.Report.Variant,
		Condition:         c.Report.Condition,
		Remarks:           c.Report.Remarks,
		Status:            c.Status,
		PurchasedAt:       c.PurchasedAt,
	}
	if !c.FinalizedAt.IsZero() {
		t := c.FinalizedAt
		resp.FinalizedAt = &t
	}
	return resp
}

func (h *EscrowHandler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyer := middleware.GetCaller(ctx)

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	productID, err := domain.ParseProductID(req.ProductID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid product id"))
		return
	}
	fingerprint, err := domain.ParseSerialFingerprint(req.SerialFingerprint)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid serial fingerprint"))
		return
	}

	cert, err := h.service.Purchase(ctx, buyer, productID, escrow.DeviceClaim{
		Brand:             req.Brand,
		Model:             req.Model,
		Variant:           req.Variant,
		SerialFingerprint: fingerprint,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "purchase rejected",
			"buyer", buyer,
			"product_id", productID,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toCertificateResponse(cert))
}

func (h *EscrowHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetCaller(ctx)

	id, err := domain.ParseCertificateID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	cert, err := h.service.Complete(ctx, caller, id, escrow.VerificationReport{
		Brand:     req.Brand,
		Model:     req.Model,
		Variant:   req.Variant,
		Condition: req.Condition,
		Remarks:   req.Remarks,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "completion rejected",
			"caller", caller,
			"certificate_id", id,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCertificateResponse(cert))
}

func (h *EscrowHandler) handleRefund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetCaller(ctx)

	id, err := domain.ParseCertificateID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}

	cert, err := h.service.Refund(ctx, caller, id)
	if err != nil {
		h.logger.WarnContext(ctx, "refund rejected",
			"caller", caller,
			"certificate_id", id,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCertificateResponse(cert))
}

func (h *EscrowHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCertificateID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}

	cert, err := h.service.Certificate(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCertificateResponse(cert))
}

func (h *EscrowHandler) handleListByBuyer(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.CertificatesByBuyer(r.Context(), domain.Identity(chi.URLParam(r, "identity")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeIDList(w, ids)
}

func (h *EscrowHandler) handleListBySeller(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.CertificatesBySeller(r.Context(), domain.Identity(chi.URLParam(r, "identity")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeIDList(w, ids)
}

func writeIDList(w http.ResponseWriter, ids []domain.CertificateID) {
	if ids == nil {
		ids = []domain.CertificateID{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]domain.CertificateID{"certificate_ids": ids})
}
