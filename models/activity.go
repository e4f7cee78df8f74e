package models

import "time"

// Activity represents a bookable study activity students register for.
// Price is a decimal string with two fractional digits; registrations copy
// it at creation time, so editing an activity never changes what an existing
// registration owes.
type Activity struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone"`
	ContactWechat string    `json:"contact_wechat"`
	Itinerary     string    `json:"itinerary"`
	IsActive      bool      `json:"is_active"`
	CreatedBy     int       `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ActivityUpdate carries the optional fields of an admin activity update.
// Nil means "leave unchanged".
type ActivityUpdate struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactWechat *string `json:"contact_wechat"`
	Itinerary     *string `json:"itinerary"`
	IsActive      *bool   `json:"is_active"`
}
