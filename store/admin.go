package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eduportal/models"
)

const adminColumns = `id, username, password, name, email, phone, is_active,
	last_login_at, created_by, created_at, updated_at`

func scanAdmin(row interface{ Scan(...interface{}) error }) (*models.Admin, error) {
	var a models.Admin
	var lastLogin sql.NullTime
	err := row.Scan(&a.ID, &a.Username, &a.Password, &a.Name, &a.Email, &a.Phone,
		&a.IsActive, &lastLogin, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.LastLoginAt = nullTime(lastLogin)
	return &a, nil
}

// CreateAdmin inserts an admin account and returns its id. Password must
// already be hashed.
func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO admins (username, password, name, email, phone, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		a.Username, a.Password, a.Name, a.Email, a.Phone, a.IsActive, a.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting admin: %w", err)
	}
	return id, nil
}

// GetAdminByUsername returns the admin or nil when absent.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admins WHERE username = $1", username)
	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying admin: %w", err)
	}
	return a, nil
}

// GetAdminByID returns the admin or nil when absent.
func (s *Store) GetAdminByID(ctx context.Context, id int) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admins WHERE id = $1", id)
	a, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying admin: %w", err)
	}
	return a, nil
}

// ListAdmins returns all admin accounts.
func (s *Store) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+adminColumns+" FROM admins ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning admin: %w", err)
		}
		admins = append(admins, *a)
	}
	return admins, rows.Err()
}

// UpdateAdmin applies the non-nil fields of the update.
func (s *Store) UpdateAdmin(ctx context.Context, id int, upd *models.AdminUpdate) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Password != nil {
		add("password", *upd.Password)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE admins SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error updating admin: %w", err)
	}
	return nil
}

// UpdateAdminLastLogin stamps a successful login.
func (s *Store) UpdateAdminLastLogin(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE admins SET last_login_at = CURRENT_TIMESTAMP WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error updating admin last login: %w", err)
	}
	return nil
}

// DeleteAdmin removes an admin account.
func (s *Store) DeleteAdmin(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM admins WHERE id = $1", id); err != nil {
		return fmt.Errorf("error deleting admin: %w", err)
	}
	return nil
}
