package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eduportal/models"
)

const competitionColumns = `id, name, organizer, category, level, description, requirements,
	awards, registration_start_date, registration_end_date, competition_date,
	result_announcement_date, official_website, contact_info, status,
	is_whitelisted, is_published, created_by, created_at, updated_at`

func scanCompetition(row interface{ Scan(...interface{}) error }) (*models.Competition, error) {
	var c models.Competition
	var regStart, regEnd, compDate, resultDate sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Organizer, &c.Category, &c.Level,
		&c.Description, &c.Requirements, &c.Awards, &regStart, &regEnd,
		&compDate, &resultDate, &c.OfficialWebsite, &c.ContactInfo, &c.Status,
		&c.IsWhitelisted, &c.IsPublished, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.RegistrationStartDate = nullTime(regStart)
	c.RegistrationEndDate = nullTime(regEnd)
	c.CompetitionDate = nullTime(compDate)
	c.ResultAnnouncementDate = nullTime(resultDate)
	return &c, nil
}

// CreateCompetition inserts a competition and returns its id.
func (s *Store) CreateCompetition(ctx context.Context, c *models.Competition) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO competitions (name, organizer, category, level, description,
			requirements, awards, registration_start_date, registration_end_date,
			competition_date, result_announcement_date, official_website,
			contact_info, status, is_whitelisted, is_published, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id`,
		c.Name, c.Organizer, c.Category, c.Level, c.Description, c.Requirements,
		c.Awards, timeArg(c.RegistrationStartDate), timeArg(c.RegistrationEndDate),
		timeArg(c.CompetitionDate), timeArg(c.ResultAnnouncementDate),
		c.OfficialWebsite, c.ContactInfo, c.Status, c.IsWhitelisted,
		c.IsPublished, c.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting competition: %w", err)
	}
	return id, nil
}

// GetCompetitionByID returns the competition or nil when absent.
func (s *Store) GetCompetitionByID(ctx context.Context, id int) (*models.Competition, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+competitionColumns+" FROM competitions WHERE id = $1", id)
	c, err := scanCompetition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying competition: %w", err)
	}
	return c, nil
}

// ListCompetitions returns competitions matching the filter, newest first.
func (s *Store) ListCompetitions(ctx context.Context, f *models.CompetitionFilter) ([]models.Competition, error) {
	conditions := []string{}
	args := []interface{}{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.PublishedOnly {
		conditions = append(conditions, "is_published = TRUE")
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Level != "" {
		add("level = $%d", f.Level)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.IsWhitelisted != nil {
		add("is_whitelisted = $%d", *f.IsWhitelisted)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conditions = append(conditions,
			fmt.Sprintf("(name LIKE $%d OR description LIKE $%d)", len(args), len(args)))
	}

	query := "SELECT " + competitionColumns + " FROM competitions"
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
		return nil, fmt.Errorf("error listing competitions: %w", err)
	}
	defer rows.Close()

	var items []models.Competition
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning competition: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// UpdateCompetition applies the non-nil fields of the update.
func (s *Store) UpdateCompetition(ctx context.Context, id int, upd *models.CompetitionUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Organizer != nil {
		add("organizer", *upd.Organizer)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Level != nil {
		add("level", *upd.Level)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Requirements != nil {
		add("requirements", *upd.Requirements)
	}
	if upd.Awards != nil {
		add("awards", *upd.Awards)
	}
	if upd.RegistrationStartDate != nil {
		add("registration_start_date", *upd.RegistrationStartDate)
	}
	if upd.RegistrationEndDate != nil {
		add("registration_end_date", *upd.RegistrationEndDate)
	}
	if upd.CompetitionDate != nil {
		add("competition_date", *upd.CompetitionDate)
	}
	if upd.ResultAnnouncementDate != nil {
		add("result_announcement_date", *upd.ResultAnnouncementDate)
	}
	if upd.OfficialWebsite != nil {
		add("official_website", *upd.OfficialWebsite)
	}
	if upd.ContactInfo != nil {
		add("contact_info", *upd.ContactInfo)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.IsWhitelisted != nil {
		add("is_whitelisted", *upd.IsWhitelisted)
	}
	if upd.IsPublished != nil {
		add("is_published", *upd.IsPublished)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE competitions SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error updating competition: %w", err)
	}
	return nil
}

// DeleteCompetition removes a competition.
func (s *Store) DeleteCompetition(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM competitions WHERE id = $1", id); err != nil {
		return fmt.Errorf("error deleting competition: %w", err)
	}
	return nil
}

// GetCompetitionCategories returns the distinct categories in use.
func (s *Store) GetCompetitionCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category FROM competitions WHERE category <> '' GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("error listing competition categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("error scanning competition category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
