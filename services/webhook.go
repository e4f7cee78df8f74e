package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eduportal/errors"
	"eduportal/logger"
	"eduportal/models"
	"eduportal/utils"
)

// DefaultSignatureTolerance bounds how old a signed event timestamp may be.
const DefaultSignatureTolerance = 5 * time.Minute

// Event is the provider's webhook envelope, narrowed to the fields this
// system reads.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// sessionObject is the checkout session payload inside a
// checkout.session.completed event.
type sessionObject struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	PaymentIntent     string            `json:"payment_intent"`
	AmountTotal       int64             `json:"amount_total"`
	Currency          string            `json:"currency"`
	Metadata          map[string]string `json:"metadata"`
}

// VerifySignature checks the provider's signature header against the webhook
// secret: "t=<unix>,v1=<hex hmac-sha256 of '<unix>.<body>'>". Any one of
// multiple v1 entries may match. A tolerance of zero disables the timestamp
// freshness check. Transport-free on purpose, so it is testable without an
// HTTP server.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	var timestamp string
	var signatures []string
	for _, pair := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signatures = append(signatures, v)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	if tolerance > 0 {
		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid signature timestamp")
		}
		age := time.Since(time.Unix(ts, 0))
		if age > tolerance || age < -tolerance {
			return fmt.Errorf("signature timestamp outside tolerance")
		}
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(timestamp))
	h.Write([]byte("."))
	h.Write(payload)
	expected := hex.EncodeToString(h.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("signature mismatch")
}

// webhookStore is the slice of the persistence gateway the confirmation
// handler needs.
type webhookStore interface {
	UpdateRegistrationPaymentStatus(ctx context.Context, id int, status string) error
	GetRegistrationByID(ctx context.Context, id int) (*models.Registration, error)
	GetActivityByID(ctx context.Context, id int) (*models.Activity, error)
	GetPaymentByRegistrationID(ctx context.Context, registrationID int) (*models.Payment, error)
	CreatePayment(ctx context.Context, p *models.Payment) (int, error)
	MarkPaymentCompleted(ctx context.Context, id int, transactionID, paymentData string, paidAt time.Time) error
}

// ReceiptNotifier delivers a payment confirmation to the guardian. Best
// effort; reconciliation never waits on it.
type ReceiptNotifier interface {
	SendReceipt(reg *models.Registration, payment *models.Payment, activityTitle string)
}

// WebhookService consumes the provider's asynchronous payment notifications
// and reconciles local registration/payment state.
type WebhookService struct {
	store     webhookStore
	secret    string
	tolerance time.Duration
	publisher EventPublisher
	notifier  ReceiptNotifier
	now       func() time.Time
}

func NewWebhookService(store webhookStore, secret string, publisher EventPublisher, notifier ReceiptNotifier) *WebhookService {
	return &WebhookService{
		store:     store,
		secret:    secret,
		tolerance: DefaultSignatureTolerance,
		publisher: publisher,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Ack is what the webhook endpoint returns to the provider on success.
type Ack struct {
	Received bool `json:"received,omitempty"`
	Verified bool `json:"verified,omitempty"`
}

// Process verifies and dispatches one webhook delivery.
//
// The response contract: verification failures reject immediately (the
// provider's retries won't help a bad signature); any verified and parsed
// event is acknowledged whether or not its type is acted upon; a persistence
// failure after verification surfaces as Internal so the provider retries
// the delivery.
func (s *WebhookService) Process(ctx context.Context, payload []byte, sigHeader string) (*Ack, error) {
	if sigHeader == "" {
		return nil, errors.E(errors.Unauthorized, "missing signature header")
	}
	if s.secret == "" {
		return nil, errors.E(errors.Internal, "webhook secret not configured")
	}
	if err := VerifySignature(payload, sigHeader, s.secret, s.tolerance); err != nil {
		return nil, errors.E(errors.Unauthorized, "signature verification failed", err)
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.E(errors.Invalid, "invalid event payload", err)
	}

	// Synthetic events are used by the provider dashboard to confirm the
	// endpoint is reachable.
	if strings.HasPrefix(event.ID, "evt_test_") {
		logger.Info("[webhook] Test event %s acknowledged", event.ID)
		return &Ack{Verified: true}, nil
	}

	logger.Info("[webhook] Received event: %s (%s)", event.Type, event.ID)

	switch event.Type {
	case "checkout.session.completed":
		if err := s.handleSessionCompleted(ctx, &event); err != nil {
			return nil, err
		}
	case "payment_intent.succeeded":
		logger.Info("[webhook] PaymentIntent succeeded (event %s)", event.ID)
	case "payment_intent.payment_failed":
		logger.Warn("[webhook] PaymentIntent failed (event %s)", event.ID)
	default:
		logger.Info("[webhook] Unhandled event type: %s", event.Type)
	}

	return &Ack{Received: true}, nil
}

// handleSessionCompleted reconciles a completed checkout session. Every step
// is idempotent, so the provider replaying the event is harmless.
func (s *WebhookService) handleSessionCompleted(ctx context.Context, event *Event) error {
	var sess sessionObject
	if err := json.Unmarshal(event.Data.Object, &sess); err != nil {
		return errors.E(errors.Invalid, "invalid session object", err)
	}

	registrationID := s.registrationIDFromSession(&sess)
	if registrationID == 0 {
		// Verified but unusable; failing here would just make the provider
		// retry the same malformed event forever.
		logger.Error("[webhook] No registration id in session %s (event %s)", sess.ID, event.ID)
		return nil
	}

	if err := s.store.UpdateRegistrationPaymentStatus(ctx, registrationID, models.RegistrationPaymentPaid); err != nil {
		return errors.E(errors.Internal, "error updating registration status", err)
	}

	snapshot, _ := json.Marshal(map[string]string{
		"sessionId":     sess.ID,
		"paymentIntent": sess.PaymentIntent,
	})
	paidAt := s.now()

	payment, err := s.store.GetPaymentByRegistrationID(ctx, registrationID)
	if err != nil {
		return errors.E(errors.Internal, "error loading payment", err)
	}
	if payment != nil {
		if err := s.store.MarkPaymentCompleted(ctx, payment.ID, sess.PaymentIntent, string(snapshot), paidAt); err != nil {
			return errors.E(errors.Internal, "error completing payment", err)
		}
	} else {
		// Normally createIntent has already written the row; a missing one
		// still gets recorded from the session's own totals.
		_, err := s.store.CreatePayment(ctx, &models.Payment{
			RegistrationID: registrationID,
			PaymentMethod:  models.PaymentMethodStripe,
			TransactionID:  sess.PaymentIntent,
			Amount:         utils.MinorUnitsToAmount(sess.AmountTotal),
			Currency:       strings.ToUpper(sess.Currency),
			Status:         models.PaymentStatusCompleted,
			PaymentData:    string(snapshot),
			PaidAt:         &paidAt,
		})
		if err != nil {
			return errors.E(errors.Internal, "error saving payment", err)
		}
	}

	logger.Info("[webhook] Payment completed for registration %d", registrationID)

	publishEvent(s.publisher, "payments", fmt.Sprintf("registration-%d", registrationID), map[string]interface{}{
		"event":           "payment.completed",
		"registration_id": registrationID,
		"session_id":      sess.ID,
		"payment_intent":  sess.PaymentIntent,
		"status":          models.PaymentStatusCompleted,
		"ts":              paidAt.UTC().Format(time.RFC3339),
	})

	s.notifyGuardian(ctx, registrationID)
	return nil
}

// registrationIDFromSession extracts the reconciliation key, preferring the
// client reference and falling back to metadata.
func (s *WebhookService) registrationIDFromSession(sess *sessionObject) int {
	ref := sess.ClientReferenceID
	if ref == "" {
		ref = sess.Metadata["registration_id"]
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// notifyGuardian sends the confirmation email when a guardian address was
// provided. Failures only get logged; state is already reconciled.
func (s *WebhookService) notifyGuardian(ctx context.Context, registrationID int) {
	if s.notifier == nil {
		return
	}
	reg, err := s.store.GetRegistrationByID(ctx, registrationID)
	if err != nil || reg == nil || reg.GuardianEmail == "" {
		return
	}
	payment, err := s.store.GetPaymentByRegistrationID(ctx, registrationID)
	if err != nil || payment == nil {
		return
	}
	title := ""
	if activity, err := s.store.GetActivityByID(ctx, reg.ActivityID); err == nil && activity != nil {
		title = activity.Title
	}
	s.notifier.SendReceipt(reg, payment, title)
}
