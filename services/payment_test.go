package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduportal/errors"
	"eduportal/models"
)

func paymentFixture() (*fakeGateway, *fakeCheckout) {
	gw := newFakeGateway()
	gw.activities[1] = &models.Activity{ID: 1, Title: "研学营", Price: "980.00", IsActive: true}
	gw.registrations[10] = &models.Registration{
		ID:            10,
		ActivityID:    1,
		StudentName:   "测试学生",
		GuardianEmail: "parent@example.com",
		PaymentStatus: models.RegistrationPaymentPending,
		PaymentAmount: "980.00",
	}
	return gw, &fakeCheckout{}
}

func TestCreateIntentCreatesSessionAndPayment(t *testing.T) {
	gw, checkout := paymentFixture()
	svc := NewPaymentService(gw, checkout, nil, "cny")

	result, err := svc.CreateIntent(context.Background(), 10, "https://portal.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_abc123", result.CheckoutURL)
	assert.Equal(t, "980.00", result.Amount)

	p := checkout.last()
	assert.Equal(t, int64(98000), p.AmountMinor, "980.00 converts to 98000 minor units")
	assert.Equal(t, "cny", p.Currency)
	assert.Equal(t, 10, p.RegistrationID)
	assert.Equal(t, "研学营", p.ActivityTitle)
	assert.Equal(t, "测试学生", p.StudentName)
	assert.Equal(t, "https://portal.example.com", p.Origin)

	require.Len(t, gw.payments, 1)
	row := gw.payments[0]
	assert.Equal(t, models.PaymentStatusPending, row.Status)
	assert.Equal(t, models.PaymentMethodStripe, row.PaymentMethod)
	assert.Equal(t, "cs_test_abc123", row.TransactionID)
	assert.Equal(t, "980.00", row.Amount)
	assert.Equal(t, "CNY", row.Currency)
}

func TestCreateIntentMissingRegistration(t *testing.T) {
	gw, checkout := paymentFixture()
	svc := NewPaymentService(gw, checkout, nil, "cny")

	_, err := svc.CreateIntent(context.Background(), 999, "https://portal.example.com")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.NotFound))
}

func TestCreateIntentMissingActivity(t *testing.T) {
	gw, checkout := paymentFixture()
	delete(gw.activities, 1)
	svc := NewPaymentService(gw, checkout, nil, "cny")

	_, err := svc.CreateIntent(context.Background(), 10, "https://portal.example.com")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.NotFound))
}

func TestCreateIntentAlreadyCompleted(t *testing.T) {
	gw, checkout := paymentFixture()
	gw.payments = append(gw.payments, &models.Payment{
		ID:             50,
		RegistrationID: 10,
		Status:         models.PaymentStatusCompleted,
	})
	svc := NewPaymentService(gw, checkout, nil, "cny")

	_, err := svc.CreateIntent(context.Background(), 10, "https://portal.example.com")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Conflict))
	assert.Empty(t, checkout.params, "no session should be created for a paid registration")
}

func TestCreateIntentProviderFailure(t *testing.T) {
	gw, checkout := paymentFixture()
	checkout.err = fmt.Errorf("stripe: connection refused")
	svc := NewPaymentService(gw, checkout, nil, "cny")

	_, err := svc.CreateIntent(context.Background(), 10, "https://portal.example.com")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.Upstream))
	assert.Empty(t, gw.payments, "no payment row on provider failure")
}

// Re-invoking for a still-pending registration must replace the session on
// the existing row, never grow a second one. This is the same guarantee the
// concurrent-call race relies on: the row is unique per registration and the
// last writer's transaction id wins.
func TestCreateIntentUpsertsExistingPayment(t *testing.T) {
	gw, checkout := paymentFixture()
	svc := NewPaymentService(gw, checkout, nil, "cny")

	_, err := svc.CreateIntent(context.Background(), 10, "https://portal.example.com")
	require.NoError(t, err)
	require.Len(t, gw.payments, 1)
	gw.payments[0].Status = models.PaymentStatusFailed

	_, err = svc.CreateIntent(context.Background(), 10, "https://portal.example.com")
	require.NoError(t, err)

	require.Len(t, gw.payments, 1, "second attempt reuses the row")
	assert.Equal(t, models.PaymentStatusPending, gw.payments[0].Status)
	assert.Equal(t, "cs_test_abc123", gw.payments[0].TransactionID)
}

func TestGetByRegistrationIDAbsent(t *testing.T) {
	gw, checkout := paymentFixture()
	svc := NewPaymentService(gw, checkout, nil, "cny")

	p, err := svc.GetByRegistrationID(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, p)
}
