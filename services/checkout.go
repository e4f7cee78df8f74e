package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// CheckoutParams describes one hosted checkout session request. Amounts are
// already in minor units; conversion happens before the provider boundary.
type CheckoutParams struct {
	RegistrationID int
	AmountMinor    int64
	Currency       string
	ActivityTitle  string
	StudentName    string
	GuardianEmail  string
	Origin         string
}

// CheckoutSession is the narrowed provider result. Nothing else from the
// provider's session object leaves the checkout layer.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutProvider creates hosted checkout sessions with an external payment
// provider.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)
}

// StripeCheckout implements CheckoutProvider against Stripe's hosted
// checkout.
type StripeCheckout struct{}

// NewStripeCheckout configures the Stripe client with the given secret key.
func NewStripeCheckout(secretKey string) *StripeCheckout {
	stripe.Key = secretKey
	return &StripeCheckout{}
}

// CreateCheckoutSession creates a single-use hosted payment page. The
// registration id rides along twice, as client_reference_id and as metadata,
// so the webhook can recover it even if one field is dropped.
func (s *StripeCheckout) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.ActivityTitle),
						Description: stripe.String(fmt.Sprintf("学生：%s", p.StudentName)),
					},
					UnitAmount: stripe.Int64(p.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:          stripe.String(fmt.Sprintf("%s/receipt/%d", p.Origin, p.RegistrationID)),
		CancelURL:           stripe.String(fmt.Sprintf("%s/payment/%d", p.Origin, p.RegistrationID)),
		ClientReferenceID:   stripe.String(fmt.Sprintf("%d", p.RegistrationID)),
		AllowPromotionCodes: stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("registration_id", fmt.Sprintf("%d", p.RegistrationID))
	params.AddMetadata("student_name", p.StudentName)
	if p.GuardianEmail != "" {
		params.CustomerEmail = stripe.String(p.GuardianEmail)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("error creating checkout session: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
