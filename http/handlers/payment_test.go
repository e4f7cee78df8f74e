package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduportal/models"
	"eduportal/services"
)

const testSecret = "whsec_handler_test"

// webhookStoreStub backs the webhook endpoint tests with one registration
// and its pending payment.
type webhookStoreStub struct {
	registration *models.Registration
	payment      *models.Payment
}

func (s *webhookStoreStub) UpdateRegistrationPaymentStatus(ctx context.Context, id int, status string) error {
	s.registration.PaymentStatus = status
	return nil
}

func (s *webhookStoreStub) GetRegistrationByID(ctx context.Context, id int) (*models.Registration, error) {
	return s.registration, nil
}

func (s *webhookStoreStub) GetActivityByID(ctx context.Context, id int) (*models.Activity, error) {
	return nil, nil
}

func (s *webhookStoreStub) GetPaymentByRegistrationID(ctx context.Context, registrationID int) (*models.Payment, error) {
	return s.payment, nil
}

func (s *webhookStoreStub) CreatePayment(ctx context.Context, p *models.Payment) (int, error) {
	s.payment = p
	return 1, nil
}

func (s *webhookStoreStub) MarkPaymentCompleted(ctx context.Context, id int, transactionID, paymentData string, paidAt time.Time) error {
	s.payment.Status = models.PaymentStatusCompleted
	s.payment.TransactionID = transactionID
	s.payment.PaymentData = paymentData
	s.payment.PaidAt = &paidAt
	return nil
}

func signedHeader(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookHandlerFixture() (*webhookStoreStub, *PaymentHandler) {
	store := &webhookStoreStub{
		registration: &models.Registration{ID: 10, PaymentStatus: models.RegistrationPaymentPending},
		payment:      &models.Payment{ID: 50, RegistrationID: 10, Status: models.PaymentStatusPending},
	}
	svc := services.NewWebhookService(store, testSecret, nil, nil)
	return store, NewPaymentHandler(nil, svc)
}

func TestWebhookEndpointCompletesPayment(t *testing.T) {
	store, handler := webhookHandlerFixture()

	obj, _ := json.Marshal(map[string]interface{}{
		"id":                  "cs_test_abc123",
		"client_reference_id": "10",
		"payment_intent":      "pi_test_789",
	})
	payload, _ := json.Marshal(map[string]interface{}{
		"id":   "evt_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{"object": json.RawMessage(obj)},
	})

	r := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewReader(payload))
	r.Header.Set("Stripe-Signature", signedHeader(payload, testSecret))
	w := httptest.NewRecorder()

	handler.Webhook(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RegistrationPaymentPaid, store.registration.PaymentStatus)
	assert.Equal(t, models.PaymentStatusCompleted, store.payment.Status)

	var ack map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.True(t, ack["received"])
}

func TestWebhookEndpointRejectsBadSignature(t *testing.T) {
	store, handler := webhookHandlerFixture()

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	r := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewReader(payload))
	r.Header.Set("Stripe-Signature", signedHeader(payload, "whsec_wrong"))
	w := httptest.NewRecorder()

	handler.Webhook(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.RegistrationPaymentPending, store.registration.PaymentStatus)
}

func TestWebhookEndpointRejectsMissingHeader(t *testing.T) {
	_, handler := webhookHandlerFixture()

	r := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.Webhook(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpointRejectsGet(t *testing.T) {
	_, handler := webhookHandlerFixture()

	r := httptest.NewRequest(http.MethodGet, "/webhook/stripe", nil)
	w := httptest.NewRecorder()

	handler.Webhook(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
