package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eduportal/models"
)

const paymentColumns = `id, registration_id, payment_method, transaction_id, amount,
	currency, status, payment_data, paid_at, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	var p models.Payment
	var paidAt sql.NullTime
	err := row.Scan(&p.ID, &p.RegistrationID, &p.PaymentMethod, &p.TransactionID,
		&p.Amount, &p.Currency, &p.Status, &p.PaymentData, &paidAt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PaidAt = nullTime(paidAt)
	return &p, nil
}

// CreatePayment inserts a new payment row and returns its id. The unique
// constraint on registration_id is what keeps the relationship 1:1.
func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO payments (registration_id, payment_method, transaction_id,
			amount, currency, status, payment_data, paid_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.RegistrationID, p.PaymentMethod, p.TransactionID, p.Amount,
		p.Currency, p.Status, p.PaymentData, timeArg(p.PaidAt)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting payment: %w", err)
	}
	return id, nil
}

// GetPaymentByRegistrationID returns the payment for a registration or nil
// when none exists yet.
func (s *Store) GetPaymentByRegistrationID(ctx context.Context, registrationID int) (*models.Payment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE registration_id = $1", registrationID)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying payment: %w", err)
	}
	return p, nil
}

// UpdatePaymentSession re-points an existing payment row at a fresh checkout
// session: status back to pending, transaction id overwritten. Concurrent
// checkout attempts race here last-writer-wins; the webhook reconciles by
// registration id so either session completing marks the same row paid.
func (s *Store) UpdatePaymentSession(ctx context.Context, id int, transactionID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE payments SET status = $1, transaction_id = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		models.PaymentStatusPending, transactionID, id)
	if err != nil {
		return fmt.Errorf("error updating payment session: %w", err)
	}
	return nil
}

// MarkPaymentCompleted records the provider-confirmed completion.
func (s *Store) MarkPaymentCompleted(ctx context.Context, id int, transactionID, paymentData string, paidAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE payments SET status = $1, transaction_id = $2, payment_data = $3,
			paid_at = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		models.PaymentStatusCompleted, transactionID, paymentData, paidAt, id)
	if err != nil {
		return fmt.Errorf("error marking payment completed: %w", err)
	}
	return nil
}
