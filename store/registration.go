package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eduportal/models"
)

const registrationColumns = `id, activity_id, student_name, student_gender, student_school,
	student_grade, student_class, student_id_card, guardian_name, guardian_phone,
	guardian_email, emergency_contact_name, emergency_contact_phone, remarks,
	payment_status, payment_amount, ip_address, created_at, updated_at`

func scanRegistration(row interface{ Scan(...interface{}) error }) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.ActivityID, &reg.StudentName, &reg.StudentGender,
		&reg.StudentSchool, &reg.StudentGrade, &reg.StudentClass, &reg.StudentIDCard,
		&reg.GuardianName, &reg.GuardianPhone, &reg.GuardianEmail,
		&reg.EmergencyContactName, &reg.EmergencyContactPhone, &reg.Remarks,
		&reg.PaymentStatus, &reg.PaymentAmount, &reg.IPAddress,
		&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// CreateRegistration inserts a new registration and returns its id.
func (s *Store) CreateRegistration(ctx context.Context, reg *models.Registration) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO registrations (activity_id, student_name, student_gender,
			student_school, student_grade, student_class, student_id_card,
			guardian_name, guardian_phone, guardian_email,
			emergency_contact_name, emergency_contact_phone, remarks,
			payment_status, payment_amount, ip_address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id`,
		reg.ActivityID, reg.StudentName, reg.StudentGender, reg.StudentSchool,
		reg.StudentGrade, reg.StudentClass, reg.StudentIDCard, reg.GuardianName,
		reg.GuardianPhone, reg.GuardianEmail, reg.EmergencyContactName,
		reg.EmergencyContactPhone, reg.Remarks, reg.PaymentStatus,
		reg.PaymentAmount, reg.IPAddress).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting registration: %w", err)
	}
	return id, nil
}

// GetRegistrationByID returns the registration or nil when absent.
func (s *Store) GetRegistrationByID(ctx context.Context, id int) (*models.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM registrations WHERE id = $1", id)
	reg, err := scanRegistration(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying registration: %w", err)
	}
	return reg, nil
}

// UpdateRegistrationPaymentStatus sets the payment status unconditionally.
// Repeating the same transition is harmless, which is what makes webhook
// replays safe.
func (s *Store) UpdateRegistrationPaymentStatus(ctx context.Context, id int, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE registrations SET payment_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		status, id)
	if err != nil {
		return fmt.Errorf("error updating registration payment status: %w", err)
	}
	return nil
}

func registrationSearchConditions(f *models.RegistrationSearch) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.ActivityID > 0 {
		add("activity_id = $%d", f.ActivityID)
	}
	if f.StudentName != "" {
		add("student_name LIKE $%d", "%"+f.StudentName+"%")
	}
	if f.PaymentStatus != "" {
		add("payment_status = $%d", f.PaymentStatus)
	}
	if f.StartDate != nil {
		add("created_at >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("created_at <= $%d", *f.EndDate)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// SearchRegistrations returns registrations matching the admin filters,
// newest first.
func (s *Store) SearchRegistrations(ctx context.Context, f *models.RegistrationSearch) ([]models.Registration, error) {
	where, args := registrationSearchConditions(f)
	query := "SELECT " + registrationColumns + " FROM registrations" + where +
		" ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// CountRegistrations returns the total matching the same filters, for
// pagination.
func (s *Store) CountRegistrations(ctx context.Context, f *models.RegistrationSearch) (int, error) {
	where, args := registrationSearchConditions(f)
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registrations"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return total, nil
}

// DeleteRegistration removes a registration; the payment row, if any, goes
// with it via the foreign key cascade.
func (s *Store) DeleteRegistration(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM registrations WHERE id = $1", id); err != nil {
		return fmt.Errorf("error deleting registration: %w", err)
	}
	return nil
}
