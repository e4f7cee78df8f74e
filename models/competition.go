package models

import "time"

// Competition is an academic contest listed on the portal. Level and status
// use the portal's fixed vocabularies (national/provincial/municipal/school,
// upcoming/open/running/finished); the store keeps them as plain text.
type Competition struct {
	ID                     int        `json:"id"`
	Name                   string     `json:"name"`
	Organizer              string     `json:"organizer,omitempty"`
	Category               string     `json:"category,omitempty"`
	Level                  string     `json:"level,omitempty"`
	Description            string     `json:"description,omitempty"`
	Requirements           string     `json:"requirements,omitempty"`
	Awards                 string     `json:"awards,omitempty"`
	RegistrationStartDate  *time.Time `json:"registration_start_date,omitempty"`
	RegistrationEndDate    *time.Time `json:"registration_end_date,omitempty"`
	CompetitionDate        *time.Time `json:"competition_date,omitempty"`
	ResultAnnouncementDate *time.Time `json:"result_announcement_date,omitempty"`
	OfficialWebsite        string     `json:"official_website,omitempty"`
	ContactInfo            string     `json:"contact_info,omitempty"`
	Status                 string     `json:"status"`
	IsWhitelisted          bool       `json:"is_whitelisted"`
	IsPublished            bool       `json:"is_published"`
	CreatedBy              int        `json:"created_by"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// CompetitionUpdate carries optional fields for an admin competition update.
type CompetitionUpdate struct {
	Name                   *string    `json:"name"`
	Organizer              *string    `json:"organizer"`
	Category               *string    `json:"category"`
	Level                  *string    `json:"level"`
	Description            *string    `json:"description"`
	Requirements           *string    `json:"requirements"`
	Awards                 *string    `json:"awards"`
	RegistrationStartDate  *time.Time `json:"registration_start_date"`
	RegistrationEndDate    *time.Time `json:"registration_end_date"`
	CompetitionDate        *time.Time `json:"competition_date"`
	ResultAnnouncementDate *time.Time `json:"result_announcement_date"`
	OfficialWebsite        *string    `json:"official_website"`
	ContactInfo            *string    `json:"contact_info"`
	Status                 *string    `json:"status"`
	IsWhitelisted          *bool      `json:"is_whitelisted"`
	IsPublished            *bool      `json:"is_published"`
}

// CompetitionFilter holds list filters for competition listings.
type CompetitionFilter struct {
	Category      string
	Level         string
	Status        string
	IsWhitelisted *bool
	Search        string
	PublishedOnly bool
	Limit         int
	Offset        int
}
