package models

import "time"

// Registration payment status values.
const (
	RegistrationPaymentPending  = "pending"
	RegistrationPaymentPaid     = "paid"
	RegistrationPaymentRefunded = "refunded"
)

// Registration is one student's enrollment attempt against an activity.
// PaymentAmount is copied from the activity's price when the row is created
// and never recomputed afterwards.
type Registration struct {
	ID                    int       `json:"id"`
	ActivityID            int       `json:"activity_id"`
	StudentName           string    `json:"student_name"`
	StudentGender         string    `json:"student_gender"`
	StudentSchool         string    `json:"student_school"`
	StudentGrade          string    `json:"student_grade"`
	StudentClass          string    `json:"student_class"`
	StudentIDCard         string    `json:"student_id_card,omitempty"`
	GuardianName          string    `json:"guardian_name"`
	GuardianPhone         string    `json:"guardian_phone"`
	GuardianEmail         string    `json:"guardian_email,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	Remarks               string    `json:"remarks,omitempty"`
	PaymentStatus         string    `json:"payment_status"`
	PaymentAmount         string    `json:"payment_amount"`
	IPAddress             string    `json:"ip_address,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// RegistrationSearch holds the admin search filters. Zero values mean
// "no filter" except Limit/Offset which always apply.
type RegistrationSearch struct {
	ActivityID    int
	StudentName   string
	PaymentStatus string
	StartDate     *time.Time
	EndDate       *time.Time
	Limit         int
	Offset        int
}
