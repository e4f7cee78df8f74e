package models

import "time"

// Payment status values.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// PaymentMethodStripe is the only checkout channel currently wired up.
const PaymentMethodStripe = "stripe"

// Payment is the external transaction record for exactly one registration.
// RegistrationID is unique at the database level, which is what enforces the
// 1:1 relationship across repeated checkout attempts.
type Payment struct {
	ID             int        `json:"id"`
	RegistrationID int        `json:"registration_id"`
	PaymentMethod  string     `json:"payment_method"`
	TransactionID  string     `json:"transaction_id,omitempty"`
	Amount         string     `json:"amount"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	PaymentData    string     `json:"payment_data,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
