package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduportal/errors"
	"eduportal/models"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedEvent(eventID string, session map[string]interface{}) []byte {
	obj, _ := json.Marshal(session)
	payload, _ := json.Marshal(map[string]interface{}{
		"id":   eventID,
		"type": "checkout.session.completed",
		"data": map[string]interface{}{"object": json.RawMessage(obj)},
	})
	return payload
}

func webhookFixture() (*fakeGateway, *WebhookService) {
	gw := newFakeGateway()
	gw.registrations[10] = &models.Registration{
		ID:            10,
		ActivityID:    1,
		StudentName:   "测试学生",
		PaymentStatus: models.RegistrationPaymentPending,
		PaymentAmount: "980.00",
	}
	gw.payments = append(gw.payments, &models.Payment{
		ID:             50,
		RegistrationID: 10,
		PaymentMethod:  models.PaymentMethodStripe,
		TransactionID:  "cs_test_abc123",
		Amount:         "980.00",
		Currency:       "CNY",
		Status:         models.PaymentStatusPending,
	})
	return gw, NewWebhookService(gw, testWebhookSecret, nil, nil)
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now().Unix()

	t.Run("valid", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, now)
		assert.NoError(t, VerifySignature(payload, header, testWebhookSecret, 5*time.Minute))
	})
	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, now)
		assert.Error(t, VerifySignature([]byte(`{"id":"evt_2"}`), header, testWebhookSecret, 5*time.Minute))
	})
	t.Run("wrong secret", func(t *testing.T) {
		header := signPayload(payload, "whsec_other", now)
		assert.Error(t, VerifySignature(payload, header, testWebhookSecret, 5*time.Minute))
	})
	t.Run("malformed header", func(t *testing.T) {
		assert.Error(t, VerifySignature(payload, "garbage", testWebhookSecret, 5*time.Minute))
	})
	t.Run("stale timestamp", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, now-3600)
		assert.Error(t, VerifySignature(payload, header, testWebhookSecret, 5*time.Minute))
	})
	t.Run("tolerance disabled", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, now-3600)
		assert.NoError(t, VerifySignature(payload, header, testWebhookSecret, 0))
	})
}

func TestWebhookMissingHeader(t *testing.T) {
	_, svc := webhookFixture()
	_, err := svc.Process(context.Background(), []byte(`{}`), "")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Unauthorized))
}

func TestWebhookMissingSecret(t *testing.T) {
	gw := newFakeGateway()
	svc := NewWebhookService(gw, "", nil, nil)
	payload := []byte(`{}`)
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	_, err := svc.Process(context.Background(), payload, header)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Internal))
}

func TestWebhookBadSignature(t *testing.T) {
	gw, svc := webhookFixture()
	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id": "cs_test_abc123", "client_reference_id": "10",
	})
	header := signPayload(payload, "whsec_wrong", time.Now().Unix())

	_, err := svc.Process(context.Background(), payload, header)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Unauthorized))
	assert.Equal(t, models.RegistrationPaymentPending, gw.registrations[10].PaymentStatus)
}

func TestWebhookTestEventAcked(t *testing.T) {
	gw, svc := webhookFixture()
	payload := []byte(`{"id":"evt_test_ping","type":"checkout.session.completed"}`)
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	ack, err := svc.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.True(t, ack.Verified)
	assert.Equal(t, models.RegistrationPaymentPending, gw.registrations[10].PaymentStatus,
		"test events must not mutate state")
}

func TestWebhookSessionCompletedReconciles(t *testing.T) {
	gw, svc := webhookFixture()
	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id":                  "cs_test_abc123",
		"client_reference_id": "10",
		"payment_intent":      "pi_test_789",
		"amount_total":        98000,
		"currency":            "cny",
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	ack, err := svc.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.True(t, ack.Received)

	assert.Equal(t, models.RegistrationPaymentPaid, gw.registrations[10].PaymentStatus)

	row := gw.payments[0]
	assert.Equal(t, models.PaymentStatusCompleted, row.Status)
	assert.Equal(t, "pi_test_789", row.TransactionID)
	require.NotNil(t, row.PaidAt)

	var snapshot map[string]string
	require.NoError(t, json.Unmarshal([]byte(row.PaymentData), &snapshot))
	assert.Equal(t, "cs_test_abc123", snapshot["sessionId"])
	assert.Equal(t, "pi_test_789", snapshot["paymentIntent"])
}

func TestWebhookReplayIdempotent(t *testing.T) {
	gw, svc := webhookFixture()
	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id":                  "cs_test_abc123",
		"client_reference_id": "10",
		"payment_intent":      "pi_test_789",
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	for i := 0; i < 3; i++ {
		_, err := svc.Process(context.Background(), payload, header)
		require.NoError(t, err)
	}

	assert.Equal(t, models.RegistrationPaymentPaid, gw.registrations[10].PaymentStatus)
	assert.Len(t, gw.payments, 1)
	assert.Equal(t, models.PaymentStatusCompleted, gw.payments[0].Status)
}

func TestWebhookMetadataFallback(t *testing.T) {
	gw, svc := webhookFixture()
	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id":             "cs_test_abc123",
		"payment_intent": "pi_test_789",
		"metadata":       map[string]string{"registration_id": "10"},
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	_, err := svc.Process(context.Background(), payload, header)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPaymentPaid, gw.registrations[10].PaymentStatus)
}

func TestWebhookMissingRegistrationIDAcked(t *testing.T) {
	gw, svc := webhookFixture()
	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id": "cs_test_abc123",
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	ack, err := svc.Process(context.Background(), payload, header)
	require.NoError(t, err, "a verified event without a reference is acked, not retried")
	assert.True(t, ack.Received)
	assert.Equal(t, models.RegistrationPaymentPending, gw.registrations[10].PaymentStatus)
}

func TestWebhookCreatesPaymentWhenRowAbsent(t *testing.T) {
	gw, svc := webhookFixture()
	gw.payments = nil

	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id":                  "cs_test_abc123",
		"client_reference_id": "10",
		"payment_intent":      "pi_test_789",
		"amount_total":        98000,
		"currency":            "cny",
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	_, err := svc.Process(context.Background(), payload, header)
	require.NoError(t, err)

	require.Len(t, gw.payments, 1)
	row := gw.payments[0]
	assert.Equal(t, models.PaymentStatusCompleted, row.Status)
	assert.Equal(t, "980.00", row.Amount, "amount recovered from the session total")
	assert.Equal(t, "CNY", row.Currency)
	assert.Equal(t, "pi_test_789", row.TransactionID)
}

func TestWebhookPersistenceFailureIsInternal(t *testing.T) {
	gw, svc := webhookFixture()
	gw.errs["UpdateRegistrationPaymentStatus"] = fmt.Errorf("db down")

	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id":                  "cs_test_abc123",
		"client_reference_id": "10",
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	_, err := svc.Process(context.Background(), payload, header)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Internal), "provider must see a 500 and retry")
}

func TestWebhookOtherEventTypesAcked(t *testing.T) {
	gw, svc := webhookFixture()
	for _, typ := range []string{"payment_intent.succeeded", "payment_intent.payment_failed", "charge.refunded"} {
		payload, _ := json.Marshal(map[string]interface{}{"id": "evt_1", "type": typ})
		header := signPayload(payload, testWebhookSecret, time.Now().Unix())

		ack, err := svc.Process(context.Background(), payload, header)
		require.NoError(t, err, typ)
		assert.True(t, ack.Received)
	}
	assert.Equal(t, models.RegistrationPaymentPending, gw.registrations[10].PaymentStatus)
}

type recordingNotifier struct {
	reg     *models.Registration
	payment *models.Payment
	title   string
}

func (n *recordingNotifier) SendReceipt(reg *models.Registration, payment *models.Payment, activityTitle string) {
	n.reg, n.payment, n.title = reg, payment, activityTitle
}

func TestWebhookReceiptCarriesActivityTitle(t *testing.T) {
	gw, _ := webhookFixture()
	gw.activities[1] = &models.Activity{ID: 1, Title: "夏令营", Price: "980.00", IsActive: true}
	gw.registrations[10].GuardianEmail = "parent@example.com"
	notifier := &recordingNotifier{}
	svc := NewWebhookService(gw, testWebhookSecret, nil, notifier)

	payload := checkoutCompletedEvent("evt_1", map[string]interface{}{
		"id":                  "cs_test_abc123",
		"client_reference_id": "10",
		"payment_intent":      "pi_test_789",
	})
	header := signPayload(payload, testWebhookSecret, time.Now().Unix())

	_, err := svc.Process(context.Background(), payload, header)
	require.NoError(t, err)

	require.NotNil(t, notifier.reg)
	assert.Equal(t, 10, notifier.reg.ID)
	assert.Equal(t, "夏令营", notifier.title)
	require.NotNil(t, notifier.payment)
	assert.Equal(t, models.PaymentStatusCompleted, notifier.payment.Status)
}
