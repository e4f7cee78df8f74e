package models

import "time"

// Admin is a back-office account. Password holds the bcrypt hash and is
// never serialized.
type Admin struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Password    string     `json:"-"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedBy   int        `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AdminUpdate carries optional fields for an admin account update.
// Password, when set, is the already-hashed value.
type AdminUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}
