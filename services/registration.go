package services

import (
	"context"
	"fmt"
	"time"

	"eduportal/errors"
	"eduportal/models"
	"eduportal/utils"
)

// registrationStore is the slice of the persistence gateway the registration
// service needs.
type registrationStore interface {
	GetActivityByID(ctx context.Context, id int) (*models.Activity, error)
	CreateRegistration(ctx context.Context, reg *models.Registration) (int, error)
	GetRegistrationByID(ctx context.Context, id int) (*models.Registration, error)
	SearchRegistrations(ctx context.Context, f *models.RegistrationSearch) ([]models.Registration, error)
	CountRegistrations(ctx context.Context, f *models.RegistrationSearch) (int, error)
	DeleteRegistration(ctx context.Context, id int) error
}

// RegistrationService handles student registration submissions.
type RegistrationService struct {
	store     registrationStore
	publisher EventPublisher
}

func NewRegistrationService(store registrationStore, publisher EventPublisher) *RegistrationService {
	return &RegistrationService{store: store, publisher: publisher}
}

// CreateRegistrationInput carries one public registration submission.
// ClientIP is resolved by the HTTP layer before the service is called.
type CreateRegistrationInput struct {
	ActivityID            int    `json:"activity_id"`
	StudentName           string `json:"student_name"`
	StudentGender         string `json:"student_gender"`
	StudentSchool         string `json:"student_school"`
	StudentGrade          string `json:"student_grade"`
	StudentClass          string `json:"student_class"`
	StudentIDCard         string `json:"student_id_card"`
	GuardianName          string `json:"guardian_name"`
	GuardianPhone         string `json:"guardian_phone"`
	GuardianEmail         string `json:"guardian_email"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	Remarks               string `json:"remarks"`
	ClientIP              string `json:"-"`
}

func (in *CreateRegistrationInput) validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"student_name", in.StudentName, utils.MaxNameLength},
		{"student_school", in.StudentSchool, utils.MaxSchoolLength},
		{"student_grade", in.StudentGrade, 50},
		{"student_class", in.StudentClass, 50},
		{"guardian_name", in.GuardianName, utils.MaxNameLength},
	}
	for _, c := range checks {
		if err := utils.ValidateRequired(c.field, c.value, c.max); err != nil {
			return errors.E(errors.Invalid, err.Error())
		}
	}
	if err := utils.ValidateGender(in.StudentGender); err != nil {
		return errors.E(errors.Invalid, err.Error())
	}
	if err := utils.ValidatePhone(in.GuardianPhone); err != nil {
		return errors.E(errors.Invalid, "guardian phone: "+err.Error())
	}
	if err := utils.ValidateEmail(in.GuardianEmail); err != nil {
		return errors.E(errors.Invalid, "guardian email: "+err.Error())
	}
	if in.StudentIDCard != "" && len(in.StudentIDCard) > utils.MaxIDCardLength {
		return errors.E(errors.Invalid, "student id card too long")
	}
	return nil
}

// Create validates the submission against its activity and inserts a new
// registration. The payment amount is copied from the activity's price at
// this moment and never recomputed, so later price edits don't affect the
// row. Duplicate submissions create duplicate rows; there is no dedup.
func (s *RegistrationService) Create(ctx context.Context, in *CreateRegistrationInput) (int, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	activity, err := s.store.GetActivityByID(ctx, in.ActivityID)
	if err != nil {
		return 0, errors.E(errors.Internal, "error loading activity", err)
	}
	if activity == nil {
		return 0, errors.E(errors.NotFound, "activity not found")
	}
	if !activity.IsActive {
		return 0, errors.E(errors.Invalid, "activity is closed for registration")
	}

	amount, err := utils.NormalizeAmount(activity.Price)
	if err != nil {
		return 0, errors.E(errors.Internal, "invalid activity price", err)
	}

	reg := &models.Registration{
		ActivityID:            in.ActivityID,
		StudentName:           in.StudentName,
		StudentGender:         in.StudentGender,
		StudentSchool:         in.StudentSchool,
		StudentGrade:          in.StudentGrade,
		StudentClass:          in.StudentClass,
		StudentIDCard:         in.StudentIDCard,
		GuardianName:          in.GuardianName,
		GuardianPhone:         in.GuardianPhone,
		GuardianEmail:         in.GuardianEmail,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		Remarks:               in.Remarks,
		PaymentStatus:         models.RegistrationPaymentPending,
		PaymentAmount:         amount,
		IPAddress:             in.ClientIP,
	}

	id, err := s.store.CreateRegistration(ctx, reg)
	if err != nil {
		return 0, errors.E(errors.Internal, "error saving registration", err)
	}

	publishEvent(s.publisher, "payments", fmt.Sprintf("registration-%d", id), map[string]interface{}{
		"event":           "registration.created",
		"registration_id": id,
		"activity_id":     in.ActivityID,
		"amount":          amount,
		"status":          models.RegistrationPaymentPending,
		"ts":              time.Now().UTC().Format(time.RFC3339),
	})

	return id, nil
}

// GetByID returns one registration, e.g. for the receipt page.
func (s *RegistrationService) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	reg, err := s.store.GetRegistrationByID(ctx, id)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading registration", err)
	}
	if reg == nil {
		return nil, errors.E(errors.NotFound, "registration not found")
	}
	return reg, nil
}

// SearchResult is one page of admin search results.
type SearchResult struct {
	Items      []models.Registration `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// Search runs the admin registration search with a total count for
// pagination.
func (s *RegistrationService) Search(ctx context.Context, f *models.RegistrationSearch, page, pageSize int) (*SearchResult, error) {
	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize

	items, err := s.store.SearchRegistrations(ctx, f)
	if err != nil {
		return nil, errors.E(errors.Internal, "error searching registrations", err)
	}
	total, err := s.store.CountRegistrations(ctx, f)
	if err != nil {
		return nil, errors.E(errors.Internal, "error counting registrations", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &SearchResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Delete removes a registration (admin operation).
func (s *RegistrationService) Delete(ctx context.Context, id int) error {
	if err := s.store.DeleteRegistration(ctx, id); err != nil {
		return errors.E(errors.Internal, "error deleting registration", err)
	}
	return nil
}

// BatchDelete removes multiple registrations and reports how many went
// through. A failure mid-batch leaves the earlier deletions in place.
func (s *RegistrationService) BatchDelete(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, errors.E(errors.Invalid, "no ids provided")
	}
	deleted := 0
	for _, id := range ids {
		if err := s.store.DeleteRegistration(ctx, id); err != nil {
			return deleted, errors.E(errors.Internal, "error deleting registration", err)
		}
		deleted++
	}
	return deleted, nil
}
