package db

import (
	"database/sql"
	"fmt"
	"os"

	"eduportal/config"
	"eduportal/logger"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Open connects to Postgres, ensures the schema exists, and returns the
// handle. The caller owns the lifecycle; nothing in this package keeps
// package-level state.
func Open() (*sql.DB, error) {
	connStr := config.GetDBConnString()

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := createTables(database); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return database, nil
}

func createTables(database *sql.DB) error {
	adminTable := `
	CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login_at TIMESTAMP,
		created_by INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	activityTable := `
	CREATE TABLE IF NOT EXISTS activities (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		contact_wechat TEXT NOT NULL DEFAULT '',
		itinerary TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	registrationTable := `
	CREATE TABLE IF NOT EXISTS registrations (
		id SERIAL PRIMARY KEY,
		activity_id INTEGER NOT NULL,
		student_name TEXT NOT NULL,
		student_gender TEXT NOT NULL,
		student_school TEXT NOT NULL,
		student_grade TEXT NOT NULL,
		student_class TEXT NOT NULL,
		student_id_card TEXT NOT NULL DEFAULT '',
		guardian_name TEXT NOT NULL,
		guardian_phone TEXT NOT NULL,
		guardian_email TEXT NOT NULL DEFAULT '',
		emergency_contact_name TEXT NOT NULL DEFAULT '',
		emergency_contact_phone TEXT NOT NULL DEFAULT '',
		remarks TEXT NOT NULL DEFAULT '',
		payment_status TEXT NOT NULL DEFAULT 'pending',
		payment_amount NUMERIC(10,2) NOT NULL,
		ip_address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_activity
			FOREIGN KEY (activity_id)
			REFERENCES activities(id)
	);`

	paymentTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id SERIAL PRIMARY KEY,
		registration_id INTEGER NOT NULL UNIQUE,
		payment_method TEXT NOT NULL DEFAULT 'stripe',
		transaction_id TEXT NOT NULL DEFAULT '',
		amount NUMERIC(10,2) NOT NULL,
		currency TEXT NOT NULL DEFAULT 'CNY',
		status TEXT NOT NULL DEFAULT 'pending',
		payment_data TEXT NOT NULL DEFAULT '',
		paid_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_registration
			FOREIGN KEY (registration_id)
			REFERENCES registrations(id)
			ON DELETE CASCADE
	);`

	newsTable := `
	CREATE TABLE IF NOT EXISTS news (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		cover_image TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		publish_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		view_count INTEGER NOT NULL DEFAULT 0,
		created_by INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	competitionTable := `
	CREATE TABLE IF NOT EXISTS competitions (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		organizer TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '',
		awards TEXT NOT NULL DEFAULT '',
		registration_start_date TIMESTAMP,
		registration_end_date TIMESTAMP,
		competition_date TIMESTAMP,
		result_announcement_date TIMESTAMP,
		official_website TEXT NOT NULL DEFAULT '',
		contact_info TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'upcoming',
		is_whitelisted BOOLEAN NOT NULL DEFAULT FALSE,
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		created_by INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	courseTable := `
	CREATE TABLE IF NOT EXISTS courses (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		teacher_name TEXT NOT NULL,
		teacher_title TEXT NOT NULL DEFAULT '',
		teacher_school TEXT NOT NULL DEFAULT '',
		teacher_intro TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL,
		grade TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		syllabus TEXT NOT NULL DEFAULT '',
		schedule TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		max_students INTEGER NOT NULL DEFAULT 0,
		course_type TEXT NOT NULL,
		duration TEXT NOT NULL DEFAULT '',
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		contact_phone TEXT NOT NULL DEFAULT '',
		contact_wechat TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	tables := []struct {
		name string
		ddl  string
	}{
		{"admins", adminTable},
		{"activities", activityTable},
		{"registrations", registrationTable},
		{"payments", paymentTable},
		{"news", newsTable},
		{"competitions", competitionTable},
		{"courses", courseTable},
	}

	for _, t := range tables {
		if _, err := database.Exec(t.ddl); err != nil {
			return fmt.Errorf("error creating %s table: %w", t.name, err)
		}
	}

	return seedDefaultAdmin(database)
}

// seedDefaultAdmin inserts a bootstrap admin account when the table is empty
// so a fresh deployment can log into the back office.
func seedDefaultAdmin(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return fmt.Errorf("error counting admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "admin123"
		logger.Warn("ADMIN_INITIAL_PASSWORD not set, seeding default admin with fallback password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing bootstrap admin password: %w", err)
	}

	_, err = database.Exec(
		"INSERT INTO admins (username, password, name) VALUES ($1, $2, $3)",
		"admin", string(hash), "Administrator")
	if err != nil {
		return fmt.Errorf("error seeding bootstrap admin: %w", err)
	}

	logger.Info("Seeded bootstrap admin account 'admin'")
	return nil
}
