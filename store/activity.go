package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eduportal/models"
)

const activityColumns = `id, title, description, price, contact_person, contact_phone,
	contact_wechat, itinerary, is_active, created_by, created_at, updated_at`

func scanActivity(row interface{ Scan(...interface{}) error }) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Price, &a.ContactPerson,
		&a.ContactPhone, &a.ContactWechat, &a.Itinerary, &a.IsActive,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateActivity inserts a new activity and returns its id.
func (s *Store) CreateActivity(ctx context.Context, a *models.Activity) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO activities (title, description, price, contact_person, contact_phone,
			contact_wechat, itinerary, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		a.Title, a.Description, a.Price, a.ContactPerson, a.ContactPhone,
		a.ContactWechat, a.Itinerary, a.IsActive, a.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting activity: %w", err)
	}
	return id, nil
}

// GetActivityByID returns the activity or nil when absent.
func (s *Store) GetActivityByID(ctx context.Context, id int) (*models.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE id = $1", id)
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying activity: %w", err)
	}
	return a, nil
}

// ListActivities returns activities newest first. When activeOnly is set,
// closed activities are filtered out (the public listing).
func (s *Store) ListActivities(ctx context.Context, activeOnly bool) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities"
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// UpdateActivity applies the non-nil fields of the update.
func (s *Store) UpdateActivity(ctx context.Context, id int, upd *models.ActivityUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.ContactPerson != nil {
		add("contact_person", *upd.ContactPerson)
	}
	if upd.ContactPhone != nil {
		add("contact_phone", *upd.ContactPhone)
	}
	if upd.ContactWechat != nil {
		add("contact_wechat", *upd.ContactWechat)
	}
	if upd.Itinerary != nil {
		add("itinerary", *upd.Itinerary)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE activities SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error updating activity: %w", err)
	}
	return nil
}
