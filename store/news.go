package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eduportal/models"
)

const newsColumns = `id, title, summary, content, category, cover_image, author, source,
	publish_date, is_published, view_count, created_by, created_at, updated_at`

func scanNews(row interface{ Scan(...interface{}) error }) (*models.News, error) {
	var n models.News
	err := row.Scan(&n.ID, &n.Title, &n.Summary, &n.Content, &n.Category,
		&n.CoverImage, &n.Author, &n.Source, &n.PublishDate, &n.IsPublished,
		&n.ViewCount, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNews inserts a news article and returns its id.
func (s *Store) CreateNews(ctx context.Context, n *models.News) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO news (title, summary, content, category, cover_image, author,
			source, publish_date, is_published, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		n.Title, n.Summary, n.Content, n.Category, n.CoverImage, n.Author,
		n.Source, n.PublishDate, n.IsPublished, n.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting news: %w", err)
	}
	return id, nil
}

// GetNewsByID returns the article or nil when absent, bumping the view
// counter on every read (the public detail page is the only reader).
func (s *Store) GetNewsByID(ctx context.Context, id int) (*models.News, error) {
	_, err := s.db.ExecContext(ctx,
		"UPDATE news SET view_count = view_count + 1 WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("error incrementing news view count: %w", err)
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news WHERE id = $1", id)
	n, err := scanNews(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying news: %w", err)
	}
	return n, nil
}

// ListNews returns articles matching the filter, newest publish date first.
func (s *Store) ListNews(ctx context.Context, f *models.NewsFilter) ([]models.News, error) {
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
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conditions = append(conditions,
			fmt.Sprintf("(title LIKE $%d OR content LIKE $%d)", len(args), len(args)))
	}

	query := "SELECT " + newsColumns + " FROM news"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY publish_date DESC"
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
		return nil, fmt.Errorf("error listing news: %w", err)
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning news: %w", err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// UpdateNews applies the non-nil fields of the update.
func (s *Store) UpdateNews(ctx context.Context, id int, upd *models.NewsUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Summary != nil {
		add("summary", *upd.Summary)
	}
	if upd.Content != nil {
		add("content", *upd.Content)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.CoverImage != nil {
		add("cover_image", *upd.CoverImage)
	}
	if upd.Author != nil {
		add("author", *upd.Author)
	}
	if upd.Source != nil {
		add("source", *upd.Source)
	}
	if upd.PublishDate != nil {
		add("publish_date", *upd.PublishDate)
	}
	if upd.IsPublished != nil {
		add("is_published", *upd.IsPublished)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE news SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error updating news: %w", err)
	}
	return nil
}

// DeleteNews removes an article.
func (s *Store) DeleteNews(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = $1", id); err != nil {
		return fmt.Errorf("error deleting news: %w", err)
	}
	return nil
}

// GetNewsCategories returns the distinct categories in use.
func (s *Store) GetNewsCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT category FROM news GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("error listing news categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("error scanning news category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
