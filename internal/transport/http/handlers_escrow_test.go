package httptransport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"veridev/internal/escrow"
	"veridev/internal/transport/http/mocks"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func pendingCertificate() *escrow.Certificate {
	return &escrow.Certificate{
		ID:        1,
		ProductID: 1,
		Buyer:     "0xbuyer",
		Seller:    "0xseller",
		Claim: escrow.DeviceClaim{
			Brand:             "Apple",
			Model:             "iPhone 12",
			Variant:           "128GB",
			SerialFingerprint: domain.FingerprintSerial("serial-1"),
		},
		Status:      escrow.StatusPending,
		PurchasedAt: time.Now(),
	}
}

func TestEscrowHandler_Purchase_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fingerprint := domain.FingerprintSerial("serial-1")
	mockEscrow := mocks.NewMockEscrowService(ctrl)
	mockEscrow.EXPECT().
		Purchase(gomock.Any(), domain.Identity("0xbuyer"), domain.ProductID(1), escrow.DeviceClaim{
			Brand:             "Apple",
			Model:             "iPhone 12",
			Variant:           "128GB",
			SerialFingerprint: fingerprint,
		}).
		Return(pendingCertificate(), nil).
		Times(1)

	handler := &EscrowHandler{service: mockEscrow, logger: discardLogger()}

	body := []byte(`{
		"product_id": "1",
		"brand": "Apple",
		"model": "iPhone 12",
		"variant": "128GB",
		"serial_fingerprint": "` + fingerprint.String() + `"
	}`)
	w := httptest.NewRecorder()
	handler.handlePurchase(w, authedRequest("POST", "/certificates", body, "0xbuyer"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.Contains(t, w.Body.String(), fingerprint.String())
}

func TestEscrowHandler_Purchase_TransferFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEscrow := mocks.NewMockEscrowService(ctrl)
	mockEscrow.EXPECT().
		Purchase(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeTransferFailed, "escrow funding transfer failed")).
		Times(1)

	handler := &EscrowHandler{service: mockEscrow, logger: discardLogger()}

	body := []byte(`{
		"product_id": "1",
		"brand": "Apple",
		"model": "iPhone 12",
		"variant": "128GB",
		"serial_fingerprint": "` + domain.FingerprintSerial("serial-1").String() + `"
	}`)
	w := httptest.NewRecorder()
	handler.handlePurchase(w, authedRequest("POST", "/certificates", body, "0xbuyer"))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "transfer_failed")
}

func TestEscrowHandler_Purchase_BadFingerprint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := &EscrowHandler{service: mocks.NewMockEscrowService(ctrl), logger: discardLogger()}

	body := []byte(`{"product_id":"1","serial_fingerprint":"zz"}`)
	w := httptest.NewRecorder()
	handler.handlePurchase(w, authedRequest("POST", "/certificates", body, "0xbuyer"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEscrowHandler_Complete_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completed := pendingCertificate()
	completed.ApplyCompletion(escrow.VerificationReport{
		Brand:     "Apple",
		Model:     "iPhone 12",
		Variant:   "128GB",
		Condition: "Good",
		Remarks:   "Minor scratches",
	}, time.Now())

	mockEscrow := mocks.NewMockEscrowService(ctrl)
	mockEscrow.EXPECT().
		Complete(gomock.Any(), domain.Identity("0xseller"), domain.CertificateID(1), escrow.VerificationReport{
			Brand:     "Apple",
			Model:     "iPhone 12",
			Variant:   "128GB",
			Condition: "Good",
			Remarks:   "Minor scratches",
		}).
		Return(completed, nil).
		Times(1)

	handler := &EscrowHandler{service: mockEscrow, logger: discardLogger()}

	body := []byte(`{
		"brand": "Apple",
		"model": "iPhone 12",
		"variant": "128GB",
		"condition": "Good",
		"remarks": "Minor scratches"
	}`)
	req := withURLParam(authedRequest("POST", "/certificates/1/complete", body, "0xseller"), "id", "1")
	w := httptest.NewRecorder()
	handler.handleComplete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
	assert.Contains(t, w.Body.String(), `"condition":"Good"`)
}

func TestEscrowHandler_Refund_CannotRefundCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEscrow := mocks.NewMockEscrowService(ctrl)
	mockEscrow.EXPECT().
		Refund(gomock.Any(), domain.Identity("0xseller"), domain.CertificateID(1)).
		Return(nil, dErrors.New(dErrors.CodeCannotRefundCompleted, "completed certifications cannot be refunded")).
		Times(1)

	handler := &EscrowHandler{service: mockEscrow, logger: discardLogger()}

	req := withURLParam(authedRequest("POST", "/certificates/1/refund", nil, "0xseller"), "id", "1")
	w := httptest.NewRecorder()
	handler.handleRefund(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "cannot_refund_completed")
}

func TestEscrowHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEscrow := mocks.NewMockEscrowService(ctrl)
	mockEscrow.EXPECT().
		Certificate(gomock.Any(), domain.CertificateID(9)).
		Return(nil, dErrors.New(dErrors.CodeCertificateNotFound, "certificate not found")).
		Times(1)

	handler := &EscrowHandler{service: mockEscrow, logger: discardLogger()}

	req := withURLParam(httptest.NewRequest("GET", "/certificates/9", nil), "id", "9")
	w := httptest.NewRecorder()
	handler.handleGet(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "certificate_not_found")
}

func TestEscrowHandler_Get_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := &EscrowHandler{service: mocks.NewMockEscrowService(ctrl), logger: discardLogger()}

	req := withURLParam(httptest.NewRequest("GET", "/certificates/abc", nil), "id", "abc")
	w := httptest.NewRecorder()
	handler.handleGet(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEscrowHandler_ListByBuyer_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEscrow := mocks.NewMockEscrowService(ctrl)
	mockEscrow.EXPECT().
		CertificatesByBuyer(gomock.Any(), domain.Identity("0xnobody")).
		Return(nil, nil).
		Times(1)

	handler := &EscrowHandler{service: mockEscrow, logger: discardLogger()}

	req := withURLParam(httptest.NewRequest("GET", "/buyers/0xnobody/certificates", nil), "identity", "0xnobody")
	w := httptest.NewRecorder()
	handler.handleListByBuyer(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"certificate_ids":[]}`, w.Body.String())
}
