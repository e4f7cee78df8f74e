package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eduportal/models"
)

const courseColumns = `id, title, teacher_name, teacher_title, teacher_school, teacher_intro,
	subject, grade, description, syllabus, schedule, location, price, max_students,
	course_type, duration, start_date, end_date, contact_phone, contact_wechat,
	is_active, created_by, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (*models.Course, error) {
	var c models.Course
	var start, end sql.NullTime
	err := row.Scan(&c.ID, &c.Title, &c.TeacherName, &c.TeacherTitle,
		&c.TeacherSchool, &c.TeacherIntro, &c.Subject, &c.Grade, &c.Description,
		&c.Syllabus, &c.Schedule, &c.Location, &c.Price, &c.MaxStudents,
		&c.CourseType, &c.Duration, &start, &end, &c.ContactPhone,
		&c.ContactWechat, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.StartDate = nullTime(start)
	c.EndDate = nullTime(end)
	return &c, nil
}

// CreateCourse inserts a course and returns its id.
func (s *Store) CreateCourse(ctx context.Context, c *models.Course) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO courses (title, teacher_name, teacher_title, teacher_school,
			teacher_intro, subject, grade, description, syllabus, schedule,
			location, price, max_students, course_type, duration, start_date,
			end_date, contact_phone, contact_wechat, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)
		 RETURNING id`,
		c.Title, c.TeacherName, c.TeacherTitle, c.TeacherSchool, c.TeacherIntro,
		c.Subject, c.Grade, c.Description, c.Syllabus, c.Schedule, c.Location,
		c.Price, c.MaxStudents, c.CourseType, c.Duration, timeArg(c.StartDate),
		timeArg(c.EndDate), c.ContactPhone, c.ContactWechat, c.IsActive,
		c.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting course: %w", err)
	}
	return id, nil
}

// GetCourseByID returns the course or nil when absent.
func (s *Store) GetCourseByID(ctx context.Context, id int) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+courseColumns+" FROM courses WHERE id = $1", id)
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying course: %w", err)
	}
	return c, nil
}

// ListCourses returns courses matching the filter, newest first.
func (s *Store) ListCourses(ctx context.Context, f *models.CourseFilter) ([]models.Course, error) {
	conditions := []string{}
	args := []interface{}{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if f.Subject != "" {
		add("subject = $%d", f.Subject)
	}
	if f.Grade != "" {
		add("grade = $%d", f.Grade)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conditions = append(conditions,
			fmt.Sprintf("(title LIKE $%d OR teacher_name LIKE $%d)", len(args), len(args)))
	}

	query := "SELECT " + courseColumns + " FROM courses"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
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
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var items []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// UpdateCourse applies the non-nil fields of the update.
func (s *Store) UpdateCourse(ctx context.Context, id int, upd *models.CourseUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.TeacherName != nil {
		add("teacher_name", *upd.TeacherName)
	}
	if upd.TeacherTitle != nil {
		add("teacher_title", *upd.TeacherTitle)
	}
	if upd.TeacherSchool != nil {
		add("teacher_school", *upd.TeacherSchool)
	}
	if upd.TeacherIntro != nil {
		add("teacher_intro", *upd.TeacherIntro)
	}
	if upd.Subject != nil {
		add("subject", *upd.Subject)
	}
	if upd.Grade != nil {
		add("grade", *upd.Grade)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Syllabus != nil {
		add("syllabus", *upd.Syllabus)
	}
	if upd.Schedule != nil {
		add("schedule", *upd.Schedule)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.MaxStudents != nil {
		add("max_students", *upd.MaxStudents)
	}
	if upd.CourseType != nil {
		add("course_type", *upd.CourseType)
	}
	if upd.Duration != nil {
		add("duration", *upd.Duration)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.ContactPhone != nil {
		add("contact_phone", *upd.ContactPhone)
	}
	if upd.ContactWechat != nil {
		add("contact_wechat", *upd.ContactWechat)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE courses SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCourse removes a course.
func (s *Store) DeleteCourse(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
