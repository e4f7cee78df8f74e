package utils

import (
	"fmt"
	"regexp"
)

// Email and phone regex patterns
var (
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	PhoneRegex = regexp.MustCompile(`^\+?[0-9\-]{5,20}$`)
)

// Field length limits for registration submissions.
const (
	MaxNameLength   = 100
	MaxSchoolLength = 200
	MaxIDCardLength = 18
)

// ValidateRequired checks that a required field is non-empty and within its
// length limit.
func ValidateRequired(field, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%s must be less than %d characters", field, maxLen)
	}
	return nil
}

// ValidateEmail checks if email format is valid. Empty is allowed for
// optional fields.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone checks if phone looks like a dialable number
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !PhoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone format")
	}
	return nil
}

// ValidateGender checks the student gender vocabulary used by the portal.
func ValidateGender(gender string) error {
	if gender != "男" && gender != "女" {
		return fmt.Errorf("invalid student gender")
	}
	return nil
}
