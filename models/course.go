package models

import "time"

// Course is a tutoring course offered through the portal.
type Course struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	TeacherName   string     `json:"teacher_name"`
	TeacherTitle  string     `json:"teacher_title,omitempty"`
	TeacherSchool string     `json:"teacher_school,omitempty"`
	TeacherIntro  string     `json:"teacher_intro,omitempty"`
	Subject       string     `json:"subject"`
	Grade         string     `json:"grade"`
	Description   string     `json:"description,omitempty"`
	Syllabus      string     `json:"syllabus,omitempty"`
	Schedule      string     `json:"schedule,omitempty"`
	Location      string     `json:"location,omitempty"`
	Price         string     `json:"price"`
	MaxStudents   int        `json:"max_students,omitempty"`
	CourseType    string     `json:"course_type"`
	Duration      string     `json:"duration,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ContactPhone  string     `json:"contact_phone,omitempty"`
	ContactWechat string     `json:"contact_wechat,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedBy     int        `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CourseUpdate carries optional fields for an admin course update.
type CourseUpdate struct {
	Title         *string    `json:"title"`
	TeacherName   *string    `json:"teacher_name"`
	TeacherTitle  *string    `json:"teacher_title"`
	TeacherSchool *string    `json:"teacher_school"`
	TeacherIntro  *string    `json:"teacher_intro"`
	Subject       *string    `json:"subject"`
	Grade         *string    `json:"grade"`
	Description   *string    `json:"description"`
	Syllabus      *string    `json:"syllabus"`
	Schedule      *string    `json:"schedule"`
	Location      *string    `json:"location"`
	Price         *string    `json:"price"`
	MaxStudents   *int       `json:"max_students"`
	CourseType    *string    `json:"course_type"`
	Duration      *string    `json:"duration"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	ContactPhone  *string    `json:"contact_phone"`
	ContactWechat *string    `json:"contact_wechat"`
	IsActive      *bool      `json:"is_active"`
}

// CourseFilter holds list filters for course listings.
type CourseFilter struct {
	Subject    string
	Grade      string
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}
